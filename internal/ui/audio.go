package ui

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundType names a sound effect.
type SoundType int

const (
	SoundSelect SoundType = iota
	SoundMove
	SoundCapture
	SoundCastle
	SoundPromote
	SoundCheck
	SoundIgnored
)

const sampleRate = 44100

type envelope int

const (
	envPluck envelope = iota // sharp attack, exponential decay
	envSwell                 // short linear attack, linear release
	envFade                  // linear decay from full
)

// note is one synthesized segment; a sound is a sequence of notes.
type note struct {
	freq      float64 // Hz; several frequencies sound as a chord
	harmonic  float64 // level of the second harmonic, 0 for a pure tone
	duration  float64 // seconds
	amplitude float64
	env       envelope
	gap       float64 // silence after the note, seconds
}

var soundTable = map[SoundType][]note{
	SoundSelect:  {{freq: 660, duration: 0.04, amplitude: 0.15, env: envPluck}},
	SoundMove:    {{freq: 440, duration: 0.08, amplitude: 0.3, env: envPluck}},
	SoundCapture: {{freq: 330, harmonic: 0.4, duration: 0.12, amplitude: 0.5, env: envPluck}},
	SoundCastle: {
		{freq: 400, duration: 0.06, amplitude: 0.3, env: envPluck, gap: 0.05},
		{freq: 440, duration: 0.06, amplitude: 0.24, env: envPluck},
	},
	SoundPromote: {
		{freq: 523.25, duration: 0.08, amplitude: 0.3, env: envSwell},
		{freq: 659.25, duration: 0.08, amplitude: 0.3, env: envSwell},
		{freq: 783.99, duration: 0.16, amplitude: 0.3, env: envSwell},
	},
	SoundCheck:   {{freq: 880, duration: 0.15, amplitude: 0.4, env: envSwell}},
	SoundIgnored: {{freq: 150, harmonic: 0.3, duration: 0.1, amplitude: 0.15, env: envFade}},
}

// AudioManager plays the synthesized effects.
type AudioManager struct {
	context *audio.Context
	sounds  map[SoundType][]byte
	enabled bool
	volume  float64
}

// NewAudioManager synthesizes every sound up front.
func NewAudioManager() *AudioManager {
	am := &AudioManager{
		context: audio.NewContext(sampleRate),
		sounds:  make(map[SoundType][]byte, len(soundTable)),
		enabled: true,
		volume:  0.5,
	}
	for st, notes := range soundTable {
		am.sounds[st] = render(notes)
	}
	return am
}

// render produces 16-bit little-endian stereo PCM.
func render(notes []note) []byte {
	var pcm []byte
	for _, n := range notes {
		samples := int(sampleRate * n.duration)
		for i := 0; i < samples; i++ {
			t := float64(i) / sampleRate
			v := (math.Sin(2*math.Pi*n.freq*t) + n.harmonic*math.Sin(4*math.Pi*n.freq*t)) /
				(1 + n.harmonic)
			v *= n.env.level(t, n.duration) * n.amplitude
			pcm = appendSample(pcm, v)
		}
		pcm = append(pcm, make([]byte, int(sampleRate*n.gap)*4)...)
	}
	return pcm
}

func (e envelope) level(t, duration float64) float64 {
	p := t / duration
	switch e {
	case envPluck:
		return math.Exp(-t * 30)
	case envSwell:
		if p < 0.1 {
			return p / 0.1
		}
		return 1.0 - (p-0.1)/0.9
	default:
		return 1.0 - p
	}
}

func appendSample(pcm []byte, v float64) []byte {
	s := int16(math.Max(-1, math.Min(1, v)) * 32767)
	return append(pcm, byte(s), byte(s>>8), byte(s), byte(s>>8))
}

// Play starts a sound. Overlapping plays each get their own player.
func (am *AudioManager) Play(sound SoundType) {
	if !am.enabled {
		return
	}
	data, ok := am.sounds[sound]
	if !ok {
		return
	}
	player := am.context.NewPlayerFromBytes(data)
	player.SetVolume(am.volume)
	player.Play()
}

// SetEnabled enables or disables audio.
func (am *AudioManager) SetEnabled(enabled bool) {
	am.enabled = enabled
}

// IsEnabled returns whether audio is enabled.
func (am *AudioManager) IsEnabled() bool {
	return am.enabled
}
