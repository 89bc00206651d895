package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pairkeep/pairkeep/internal/logger"
	"github.com/pairkeep/pairkeep/models"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

// newRealtimeServer runs handler against each accepted websocket connection.
func newRealtimeServer(t *testing.T, handler func(conn *websocket.Conn)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		handler(conn)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func readJoin(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	_, raw, err := conn.Read(context.Background())
	require.NoError(t, err)

	var join frame
	require.NoError(t, json.Unmarshal(raw, &join))
	require.Equal(t, "phx_join", join.Event)
	return join
}

func writeFrameTo(conn *websocket.Conn, f frame) {
	raw, _ := json.Marshal(f)
	_ = conn.Write(context.Background(), websocket.MessageText, raw)
}

func waitEvent(t *testing.T, ch Channel) models.ChannelEvent {
	t.Helper()
	select {
	case event, ok := <-ch.Events():
		require.True(t, ok, "event stream ended early")
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a channel event")
		return models.ChannelEvent{}
	}
}

func TestDial_SubscribedArrivesAfterJoinAck(t *testing.T) {
	srv := newRealtimeServer(t, func(conn *websocket.Conn) {
		join := readJoin(t, conn)
		writeFrameTo(conn, frame{
			Ref:     join.Ref,
			Topic:   join.Topic,
			Event:   "phx_reply",
			Payload: json.RawMessage(`{"status":"ok"}`),
		})
		writeFrameTo(conn, frame{
			Topic:   join.Topic,
			Event:   EventNewMood,
			Payload: json.RawMessage(`{"id":"m-1"}`),
		})
		// Hold the connection open until the client hangs up.
		_, _, _ = conn.Read(context.Background())
	})

	dialer := NewDialer(srv.URL, staticToken("test-token"), logger.Nop())
	ch, err := dialer.Dial(context.Background(), "couple:1")
	require.NoError(t, err)
	defer ch.Close()

	assert.Equal(t, EventSubscribed, waitEvent(t, ch).Event)
	assert.Equal(t, EventNewMood, waitEvent(t, ch).Event)
}

func TestDial_RejectedJoinIsChannelError(t *testing.T) {
	srv := newRealtimeServer(t, func(conn *websocket.Conn) {
		join := readJoin(t, conn)
		writeFrameTo(conn, frame{
			Ref:     join.Ref,
			Topic:   join.Topic,
			Event:   "phx_reply",
			Payload: json.RawMessage(`{"status":"error","response":{"reason":"unauthorized"}}`),
		})
		_, _, _ = conn.Read(context.Background())
	})

	dialer := NewDialer(srv.URL, staticToken("test-token"), logger.Nop())
	ch, err := dialer.Dial(context.Background(), "couple:1")
	require.NoError(t, err)
	defer ch.Close()

	assert.Equal(t, EventChannelError, waitEvent(t, ch).Event)

	_, ok := <-ch.Events()
	assert.False(t, ok, "a rejected join must end the event stream")
}

func TestDial_ReplyToOtherRefIsNotSubscribed(t *testing.T) {
	srv := newRealtimeServer(t, func(conn *websocket.Conn) {
		join := readJoin(t, conn)
		writeFrameTo(conn, frame{
			Ref:     "not-the-join-ref",
			Topic:   join.Topic,
			Event:   "phx_reply",
			Payload: json.RawMessage(`{"status":"ok"}`),
		})
		writeFrameTo(conn, frame{
			Ref:     join.Ref,
			Topic:   join.Topic,
			Event:   "phx_reply",
			Payload: json.RawMessage(`{"status":"ok"}`),
		})
		_, _, _ = conn.Read(context.Background())
	})

	dialer := NewDialer(srv.URL, staticToken("test-token"), logger.Nop())
	ch, err := dialer.Dial(context.Background(), "couple:1")
	require.NoError(t, err)
	defer ch.Close()

	// Only the reply matching the join ref may subscribe the channel, so
	// exactly one SUBSCRIBED arrives.
	assert.Equal(t, EventSubscribed, waitEvent(t, ch).Event)

	select {
	case event := <-ch.Events():
		t.Fatalf("unexpected extra event %q", event.Event)
	case <-time.After(100 * time.Millisecond):
	}
}
