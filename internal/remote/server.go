// Package remote serves a click session over HTTP and websockets.
//
// Every client sees the same board. Clicks arrive either as POST requests
// or as websocket messages, are applied to the shared session one at a
// time, and the resulting state is broadcast to every connected socket.
package remote

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/hailam/clickchess/internal/board"
	"github.com/hailam/clickchess/internal/session"
)

//go:embed assets
var assets embed.FS

// Server owns the shared session and the set of connected sockets.
type Server struct {
	router   *mux.Router
	upgrader websocket.Upgrader

	mu      sync.Mutex // guards session and orders broadcasts
	session *session.Session

	clientsLock sync.RWMutex
	clients     map[*client]struct{}
}

type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *client) send(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(v)
}

// NewServer creates a server with a fresh game, top on the upper edge.
// Access logs are written to accessLog; pass io.Discard to silence them.
func NewServer(top board.Color, accessLog io.Writer) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		session: session.New(top),
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	logged := func(next http.Handler) http.Handler {
		return handlers.LoggingHandler(accessLog, next)
	}
	s.router.Use(logged)
	s.router.NotFoundHandler = logged(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	}))

	s.router.HandleFunc("/state", s.handleState).Methods(http.MethodGet)
	s.router.HandleFunc("/click/{square:[0-9]+}", s.handleClick).Methods(http.MethodPost)
	s.router.HandleFunc("/new", s.handleNew).Methods(http.MethodPost)
	s.router.HandleFunc("/ws", s.handleWS)

	static, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(fmt.Sprintf("remote: embedded assets: %v", err))
	}
	s.router.PathPrefix("/").Handler(http.FileServer(http.FS(static))).Methods(http.MethodGet)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	st := stateOf(s.session, nil)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(mux.Vars(r)["square"])
	if err != nil || n >= int(board.NoSquare) {
		writeError(w, http.StatusBadRequest, "square must be 0-63")
		return
	}
	st := s.click(board.Square(n))
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	top := board.Black
	if v := r.URL.Query().Get("top"); v != "" {
		var ok bool
		if top, ok = board.ParseColor(v); !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown side %q", v))
			return
		}
	}
	st := s.reset(top)
	writeJSON(w, http.StatusOK, st)
}

// click applies one click to the shared session and broadcasts the result.
// Every event is broadcast under mu so all clients see states in order.
func (s *Server) click(sq board.Square) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.session.Click(sq)
	st := stateOf(s.session, &res)
	if res.Action == session.Moved {
		log.Printf("[MOVE] %v -> %v, %v to move", res.Move.From, res.Move.To, st.SideToMove)
	}
	s.broadcast(st)
	return st
}

func (s *Server) reset(top board.Color) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.Reset(top)
	st := stateOf(s.session, nil)
	log.Printf("[GAME] New game, %v on top", top)
	s.broadcast(st)
	return st
}

// wsMessage is what clients send over the socket.
type wsMessage struct {
	Type   string `json:"type"` // "click" or "new"
	Square *int   `json:"square,omitempty"`
	Top    string `json:"top,omitempty"`
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade failed: %v", err)
		return
	}
	log.Printf("[WS] New connection from %s", conn.RemoteAddr())

	// Holding mu keeps broadcasts out until the welcome state is sent.
	c := &client{conn: conn}
	s.mu.Lock()
	err = c.send(stateOf(s.session, nil))
	if err == nil {
		s.clientsLock.Lock()
		s.clients[c] = struct{}{}
		s.clientsLock.Unlock()
	}
	s.mu.Unlock()
	if err != nil {
		log.Printf("[WS] Welcome to %s failed: %v", conn.RemoteAddr(), err)
		conn.Close()
		return
	}

	go s.readLoop(c)
}

func (s *Server) readLoop(c *client) {
	defer s.drop(c)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Read error: %v", err)
			}
			return
		}

		var msg wsMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			if !s.reject(c, fmt.Sprintf("bad message: %v", err)) {
				return
			}
			continue
		}

		switch msg.Type {
		case "click":
			if msg.Square == nil || *msg.Square < 0 || *msg.Square >= int(board.NoSquare) {
				if !s.reject(c, "square must be 0-63") {
					return
				}
				continue
			}
			s.click(board.Square(*msg.Square))
		case "new":
			top := board.Black
			if msg.Top != "" {
				var ok bool
				if top, ok = board.ParseColor(msg.Top); !ok {
					if !s.reject(c, fmt.Sprintf("unknown side %q", msg.Top)) {
						return
					}
					continue
				}
			}
			s.reset(top)
		default:
			if !s.reject(c, fmt.Sprintf("unknown message type %q", msg.Type)) {
				return
			}
		}
	}
}

// reject answers a bad message with an error body. It reports false when the
// reply could not be written and the client should be dropped.
func (s *Server) reject(c *client, msg string) bool {
	if err := c.send(errorBody{Error: msg}); err != nil {
		log.Printf("[WS] Reply to %s failed: %v", c.conn.RemoteAddr(), err)
		return false
	}
	return true
}

func (s *Server) drop(c *client) {
	s.clientsLock.Lock()
	delete(s.clients, c)
	s.clientsLock.Unlock()
	c.conn.Close()
}

func (s *Server) broadcast(st State) {
	s.clientsLock.RLock()
	defer s.clientsLock.RUnlock()
	for c := range s.clients {
		if err := c.send(st); err != nil {
			log.Printf("[WS] Broadcast to %s failed: %v", c.conn.RemoteAddr(), err)
		}
	}
}

// ClientCount returns the number of connected sockets.
func (s *Server) ClientCount() int {
	s.clientsLock.RLock()
	defer s.clientsLock.RUnlock()
	return len(s.clients)
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}
