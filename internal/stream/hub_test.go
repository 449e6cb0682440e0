package stream

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"schelling/internal/core"
	"schelling/internal/runner"
)

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	msgType, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if msgType != websocket.BinaryMessage {
		t.Fatalf("expected binary message, got type %d", msgType)
	}
	msg, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return msg
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for hub.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d viewers, have %d", n, hub.Clients())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func frame(iteration, unhappy int) runner.Frame {
	return runner.Frame{
		Iteration: iteration,
		Unhappy:   unhappy,
		Size:      core.Size{W: 2, H: 2},
		Cells:     []uint8{0, 1, 2, uint8(iteration % 3)},
	}
}

func TestHubBroadcastsFrames(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()
	defer hub.Close()

	a := dialWS(t, srv)
	b := dialWS(t, srv)
	waitForClients(t, hub, 2)

	if err := hub.Publish(frame(4, 9)); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	for _, conn := range []*websocket.Conn{a, b} {
		msg := readMessage(t, conn)
		if msg.Iteration != 4 || msg.Unhappy != 9 || msg.Width != 2 || msg.Height != 2 {
			t.Fatalf("unexpected message %+v", msg)
		}
		if !slices.Equal(msg.Cells, []uint8{0, 1, 2, 1}) {
			t.Fatalf("unexpected cells %v", msg.Cells)
		}
	}
}

func TestHubSendsLatestFrameToLateViewer(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()
	defer hub.Close()

	if err := hub.Publish(frame(1, 5)); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if err := hub.Publish(frame(2, 3)); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	conn := dialWS(t, srv)
	if msg := readMessage(t, conn); msg.Iteration != 2 || msg.Unhappy != 3 {
		t.Fatalf("late viewer should start at the latest frame, got %+v", msg)
	}
}

func TestHubUnregistersClosedViewer(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()
	defer hub.Close()

	conn := dialWS(t, srv)
	waitForClients(t, hub, 1)
	conn.Close()
	waitForClients(t, hub, 0)

	if err := hub.Publish(frame(3, 0)); err != nil {
		t.Fatalf("Publish with no viewers: %v", err)
	}
}

func TestStateEndpoint(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	if err := hub.Publish(frame(7, 2)); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	resp, err := http.Get(srv.URL + "/state")
	if err != nil {
		t.Fatalf("GET /state: %v", err)
	}
	defer resp.Body.Close()

	var msg Message
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if msg.Iteration != 7 || msg.Unhappy != 2 || msg.Width != 2 {
		t.Fatalf("unexpected state %+v", msg)
	}
}

func TestDecodeRejectsMismatchedCells(t *testing.T) {
	data, err := Encode(Message{Width: 3, Height: 3, Cells: []uint8{0}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := Decode(data); err == nil {
		t.Fatal("expected error for short cell payload")
	}

	// Width*Height wraps to zero and would match an empty payload.
	data, err = Encode(Message{Width: 1 << 32, Height: 1 << 32})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := Decode(data); err == nil {
		t.Fatal("expected error for oversized frame")
	}
}
