package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"signup-wizard/internal/wizard"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, hub *Hub, sessionID string) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWs(w, r, sessionID)
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readAll pumps frames from conn into a channel until the connection ends.
func readAll(conn *websocket.Conn) (<-chan []byte, <-chan error) {
	msgs := make(chan []byte, 16)
	errs := make(chan error, 1)
	go func() {
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				errs <- err
				return
			}
			msgs <- data
		}
	}()
	return msgs, errs
}

func TestHubDeliversSessionUpdates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub()
	go hub.Run(ctx)

	mine, _ := readAll(dial(t, hub, "s1"))
	other, _ := readAll(dial(t, hub, "s2"))

	snap := wizard.Snapshot{ID: "s1", State: wizard.StateStep2, Step: wizard.StepChannels}

	// Registration completes asynchronously after the handshake.
	var data []byte
	deadline := time.After(2 * time.Second)
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
loop:
	for {
		select {
		case data = <-mine:
			break loop
		case <-ticker.C:
			hub.NotifySession("s1", snap)
		case <-deadline:
			t.Fatal("no session_update received")
		}
	}

	var ev struct {
		Type string          `json:"type"`
		Data wizard.Snapshot `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &ev))
	assert.Equal(t, "session_update", ev.Type)
	assert.Equal(t, "s1", ev.Data.ID)
	assert.Equal(t, wizard.StateStep2, ev.Data.State)

	select {
	case msg := <-other:
		t.Fatalf("session s2 received an s1 update: %s", msg)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubClosesClientsOnShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	_, errs := readAll(dial(t, hub, "s1"))
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-stopped

	select {
	case err := <-errs:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("client was not closed on shutdown")
	}

	// Notifications after shutdown must not block.
	hub.NotifySession("s1", wizard.Snapshot{ID: "s1"})
}

func TestHubCloseSessionDisconnectsSubscribers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub()
	go hub.Run(ctx)

	msgs, errs := readAll(dial(t, hub, "s1"))
	stay, stayErrs := readAll(dial(t, hub, "s2"))

	// Wait until both sockets are registered.
	for _, sub := range []struct {
		id   string
		msgs <-chan []byte
	}{{"s1", msgs}, {"s2", stay}} {
		deadline := time.After(2 * time.Second)
	wait:
		for {
			select {
			case <-sub.msgs:
				break wait
			case <-time.After(20 * time.Millisecond):
				hub.NotifySession(sub.id, wizard.Snapshot{ID: sub.id})
			case <-deadline:
				t.Fatalf("socket for %s never registered", sub.id)
			}
		}
	}

	hub.CloseSession("s1")

	select {
	case err := <-errs:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("s1 socket was not closed")
	}

	select {
	case err := <-stayErrs:
		t.Fatalf("s2 socket closed unexpectedly: %v", err)
	case <-time.After(100 * time.Millisecond):
	}
}
