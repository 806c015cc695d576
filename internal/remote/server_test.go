package remote

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hailam/clickchess/internal/board"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv := NewServer(board.Black, io.Discard)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return srv, ts
}

func decodeState(t *testing.T, resp *http.Response) State {
	t.Helper()
	defer resp.Body.Close()
	var st State
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return st
}

func post(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", nil)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func TestStateStartPosition(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/state")
	if err != nil {
		t.Fatalf("GET /state: %v", err)
	}
	st := decodeState(t, resp)

	if st.SideToMove != "white" || st.Top != "black" {
		t.Errorf("side=%q top=%q", st.SideToMove, st.Top)
	}
	if st.Selected != -1 || st.LastMove != nil || st.MoveCount != 0 {
		t.Errorf("fresh game: selected=%d lastMove=%v moves=%d", st.Selected, st.LastMove, st.MoveCount)
	}
	if st.Squares[4].Piece != "k" || st.Squares[60].Piece != "K" || st.Squares[36].Piece != "" {
		t.Errorf("pieces: %q %q %q", st.Squares[4].Piece, st.Squares[60].Piece, st.Squares[36].Piece)
	}
}

func TestClickSelectAndMove(t *testing.T) {
	_, ts := newTestServer(t)

	st := decodeState(t, post(t, ts.URL+"/click/52"))
	if st.Event == nil || st.Event.Action != "selected" || st.Selected != 52 {
		t.Fatalf("first click: event=%v selected=%d", st.Event, st.Selected)
	}
	if !st.Squares[36].Candidate || !st.Squares[44].Candidate || st.Squares[28].Candidate {
		t.Error("pawn candidates should be 36 and 44 only")
	}

	st = decodeState(t, post(t, ts.URL+"/click/36"))
	if st.Event.Action != "moved" {
		t.Fatalf("second click action = %q", st.Event.Action)
	}
	if st.SideToMove != "black" || st.MoveCount != 1 {
		t.Errorf("after move: side=%q moves=%d", st.SideToMove, st.MoveCount)
	}
	if st.LastMove == nil || st.LastMove.From != 52 || st.LastMove.To != 36 {
		t.Errorf("last move = %+v", st.LastMove)
	}
	for i, sq := range st.Squares {
		if sq.Selected || sq.Candidate {
			t.Errorf("square %d still marked after the move", i)
		}
	}
}

func TestClickRejectsBadSquare(t *testing.T) {
	_, ts := newTestServer(t)

	resp := post(t, ts.URL+"/click/99")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestNewGame(t *testing.T) {
	_, ts := newTestServer(t)
	decodeState(t, post(t, ts.URL+"/click/52"))

	st := decodeState(t, post(t, ts.URL+"/new?top=white"))
	if st.Top != "white" || st.Selected != -1 {
		t.Errorf("new game: top=%q selected=%d", st.Top, st.Selected)
	}
	if st.Squares[3].Piece != "K" {
		t.Errorf("square 3 = %q, want the white king", st.Squares[3].Piece)
	}

	resp := post(t, ts.URL+"/new?top=green")
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown side status = %d, want 400", resp.StatusCode)
	}
}

func TestIndexPage(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "WebSocket") {
		t.Errorf("index: status %d, %d bytes", resp.StatusCode, len(body))
	}
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readState(t *testing.T, conn *websocket.Conn) State {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var st State
	if err := conn.ReadJSON(&st); err != nil {
		t.Fatalf("read state: %v", err)
	}
	return st
}

func TestWebsocketBroadcast(t *testing.T) {
	srv, ts := newTestServer(t)

	a := dial(t, ts)
	b := dial(t, ts)
	if st := readState(t, a); st.SideToMove != "white" || st.Event != nil {
		t.Errorf("welcome state: side=%q event=%v", st.SideToMove, st.Event)
	}
	readState(t, b)
	// Registration completes just after the welcome is written.
	deadline := time.Now().Add(5 * time.Second)
	for srv.ClientCount() != 2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if n := srv.ClientCount(); n != 2 {
		t.Errorf("ClientCount = %d, want 2", n)
	}

	// A click over HTTP reaches both sockets.
	decodeState(t, post(t, ts.URL+"/click/57"))
	for _, conn := range []*websocket.Conn{a, b} {
		st := readState(t, conn)
		if st.Event == nil || st.Event.Action != "selected" || st.Event.Square != 57 {
			t.Errorf("broadcast event = %+v", st.Event)
		}
	}

	// A click over one socket reaches the other.
	if err := a.WriteJSON(map[string]any{"type": "click", "square": 42}); err != nil {
		t.Fatalf("write: %v", err)
	}
	st := readState(t, b)
	if st.Event == nil || st.Event.Action != "moved" || st.SideToMove != "black" {
		t.Errorf("socket click: event=%+v side=%q", st.Event, st.SideToMove)
	}
	readState(t, a)
}

func TestWebsocketBadMessage(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)
	readState(t, conn)

	tests := []struct {
		name string
		msg  string
		want string
	}{
		{"not json", `{`, "bad message"},
		{"no square", `{"type":"click"}`, "square must be 0-63"},
		{"off board", `{"type":"click","square":64}`, "square must be 0-63"},
		{"bad side", `{"type":"new","top":"red"}`, "unknown side"},
		{"bad type", `{"type":"undo"}`, "unknown message type"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(tc.msg)); err != nil {
				t.Fatalf("write: %v", err)
			}
			conn.SetReadDeadline(time.Now().Add(5 * time.Second))
			var body errorBody
			if err := conn.ReadJSON(&body); err != nil {
				t.Fatalf("read: %v", err)
			}
			if !strings.HasPrefix(body.Error, tc.want) {
				t.Errorf("error = %q, want prefix %q", body.Error, tc.want)
			}
		})
	}
}

func TestRejectReportsWriteFailure(t *testing.T) {
	srv := NewServer(board.Black, io.Discard)
	conns := make(chan *websocket.Conn, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := (&websocket.Upgrader{}).Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		conns <- conn
	}))
	t.Cleanup(ts.Close)
	peer := dial(t, ts)

	c := &client{conn: <-conns}
	if !srv.reject(c, "square must be 0-63") {
		t.Fatal("reject on an open connection reported a failure")
	}
	var body errorBody
	peer.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := peer.ReadJSON(&body); err != nil || body.Error != "square must be 0-63" {
		t.Errorf("reply = %q, err = %v", body.Error, err)
	}

	c.conn.Close()
	if srv.reject(c, "unknown side") {
		t.Error("reject on a closed connection reported success")
	}
}

func TestClosedSocketIsDropped(t *testing.T) {
	srv, ts := newTestServer(t)
	conn := dial(t, ts)
	readState(t, conn)
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"undo"}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	conn.Close()

	deadline := time.Now().Add(5 * time.Second)
	for srv.ClientCount() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if n := srv.ClientCount(); n != 0 {
		t.Errorf("ClientCount = %d after the socket closed, want 0", n)
	}
}
