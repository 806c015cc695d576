// Package storage keeps user preferences and play statistics on disk.
package storage

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "clickchess"

// GetDataDir returns the platform-specific data directory for the application.
// - macOS: ~/Library/Application Support/clickchess/
// - Linux: $XDG_DATA_HOME/clickchess/ or ~/.local/share/clickchess/
// - Windows: %APPDATA%/clickchess/
func GetDataDir() (string, error) {
	baseDir, err := baseDataDir(runtime.GOOS)
	if err != nil {
		return "", err
	}

	dataDir := filepath.Join(baseDir, appName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	return dataDir, nil
}

func baseDataDir(goos string) (string, error) {
	switch goos {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(homeDir, "Library", "Application Support"), nil

	case "windows":
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(homeDir, "AppData", "Roaming"), nil

	default:
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return dir, nil
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(homeDir, ".local", "share"), nil
	}
}

// GetDatabaseDir returns the directory for storing the BadgerDB database.
func GetDatabaseDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}

	dbDir := filepath.Join(dataDir, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", err
	}

	log.Printf("[STORAGE] Database directory: %s", dbDir)
	return dbDir, nil
}
