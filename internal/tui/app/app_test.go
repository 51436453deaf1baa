package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/deepcode-dev/deepcode/internal/progress"
	"github.com/deepcode-dev/deepcode/internal/testutil"
	"github.com/deepcode-dev/deepcode/internal/tui"
	"github.com/deepcode-dev/deepcode/internal/tui/views"
)

var upgrader = websocket.Upgrader{}

// holdingServer upgrades and keeps the connection open until the client
// hangs up, so tests can observe who closes first.
func holdingServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dialListener(t *testing.T, srv *httptest.Server) *progress.Listener {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	l, err := progress.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	return l
}

// waitClosed fails the test unless the listener's events channel closes
// within the deadline, which is the observable effect of Close.
func waitClosed(t *testing.T, l *progress.Listener) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-l.Events():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("listener never closed")
		}
	}
}

func TestLateProgressConnectIsClosedAfterSessionEnd(t *testing.T) {
	srv := holdingServer(t)
	a := New(tui.Deps{})

	// The subscription and the submission run in one batch; a fast
	// transport failure can deliver the response first.
	a.Update(views.SubmitInputMsg{Kind: tui.InputKindChat, Source: "build a parser", EnableIndexing: true})
	a.Update(tui.ResponseMsg{Response: testutil.ErrorResponse()})

	if a.model.Processing {
		t.Fatal("session still marked processing after response")
	}
	if a.model.State != tui.StateResults {
		t.Fatalf("state: got %v, want results", a.model.State)
	}

	l := dialListener(t, srv)
	a.Update(tui.ProgressConnectedMsg{Listener: l})

	if a.model.Listener != nil {
		t.Error("late listener was stored on a finished session")
	}
	waitClosed(t, l)
}

func TestFinishSubmissionTearsDownStoredListener(t *testing.T) {
	srv := holdingServer(t)
	a := New(tui.Deps{})

	a.Update(views.SubmitInputMsg{Kind: tui.InputKindChat, Source: "build a parser", EnableIndexing: true})

	l := dialListener(t, srv)
	a.Update(tui.ProgressConnectedMsg{Listener: l})
	if a.model.Listener == nil {
		t.Fatal("listener not stored during processing")
	}

	a.Update(tui.ResponseMsg{Response: testutil.SuccessResponse()})

	if a.model.Listener != nil {
		t.Error("listener still stored after session end")
	}
	waitClosed(t, l)
}
