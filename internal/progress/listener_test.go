package progress

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{}

func TestListenerDeliversFramesInOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		frames := []Event{
			{Progress: 10, Message: "Parsing input"},
			{Progress: 55, Message: "Generating code"},
			{Progress: 100, Message: "Done"},
		}
		for _, f := range frames {
			if err := conn.WriteJSON(f); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	l, err := Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer l.Close()

	var got []Event
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-l.Events():
			if !ok {
				if len(got) != 3 {
					t.Fatalf("frames: got %d, want 3 (%v)", len(got), got)
				}
				if got[0].Progress != 10 || got[2].Progress != 100 {
					t.Errorf("frames out of order: %v", got)
				}
				return
			}
			got = append(got, ev)
		case <-timeout:
			t.Fatal("timed out waiting for frames")
		}
	}
}

func TestListenerClosesEventsOnServerDrop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn.Close()
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	l, err := Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer l.Close()

	select {
	case _, ok := <-l.Events():
		if ok {
			// Drain until close.
			for range l.Events() {
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("events channel never closed")
	}
}

func TestDialFailsWithoutServer(t *testing.T) {
	if _, err := Dial("ws://127.0.0.1:1/ws/progress", nil); err == nil {
		t.Error("Dial succeeded against a closed port")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		// Hold the connection until the client hangs up.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	l, err := Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}

	l.Close()
	l.Close()
}
