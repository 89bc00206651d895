package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/pairkeep/pairkeep/internal/logger"
	"github.com/pairkeep/pairkeep/models"
)

//go:generate mockgen -source=channel.go -destination=../mock/realtime_mock.go -package=mock

// Lifecycle event names delivered alongside data events.
const (
	EventSubscribed   = "SUBSCRIBED"
	EventChannelError = "CHANNEL_ERROR"
	EventTimedOut     = "TIMED_OUT"
	EventClosed       = "CLOSED"
)

// Channel is a live subscription to one realtime topic. Events ends when the
// connection drops; Close is safe to call more than once.
type Channel interface {
	Events() <-chan models.ChannelEvent
	Send(ctx context.Context, event string, payload any) error
	Close() error
}

// Dialer opens channels. Swapped for a fake in tests.
type Dialer interface {
	Dial(ctx context.Context, topic string) (Channel, error)
}

// frame is the wire shape of a realtime message.
type frame struct {
	Ref     string          `json:"ref,omitempty"`
	Topic   string          `json:"topic"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type wsDialer struct {
	baseURL string
	tokens  interface{ Token() string }
	log     *logger.Logger
}

// NewDialer creates the websocket [Dialer] for the hosted realtime endpoint.
func NewDialer(baseURL string, tokens interface{ Token() string }, log *logger.Logger) Dialer {
	return &wsDialer{baseURL: strings.TrimRight(baseURL, "/"), tokens: tokens, log: log}
}

// Dial implements [Dialer]. It connects, sends the join frame for the topic
// and starts the read pump. [EventSubscribed] is emitted once the server
// acknowledges the join; a rejected join surfaces as [EventChannelError].
func (d *wsDialer) Dial(ctx context.Context, topic string) (Channel, error) {
	endpoint := fmt.Sprintf("%s/realtime/v1/websocket?token=%s", d.baseURL, d.tokens.Token())

	conn, _, err := websocket.Dial(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("realtime dial: %w", err)
	}

	join := frame{Ref: uuid.NewString(), Topic: topic, Event: "phx_join"}
	ch := &wsChannel{
		conn:    conn,
		topic:   topic,
		joinRef: join.Ref,
		events:  make(chan models.ChannelEvent, 16),
		log:     d.log,
	}

	if err = ch.writeFrame(ctx, join); err != nil {
		_ = conn.Close(websocket.StatusNormalClosure, "join failed")
		return nil, fmt.Errorf("realtime join %s: %w", topic, err)
	}

	go ch.readPump()

	return ch, nil
}

type wsChannel struct {
	conn    *websocket.Conn
	topic   string
	joinRef string
	events  chan models.ChannelEvent
	log     *logger.Logger

	closeOnce sync.Once
	writeMu   sync.Mutex
}

func (c *wsChannel) Events() <-chan models.ChannelEvent {
	return c.events
}

// Send publishes a broadcast event on the channel's topic.
func (c *wsChannel) Send(ctx context.Context, event string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode realtime payload: %w", err)
	}
	return c.writeFrame(ctx, frame{
		Ref:     uuid.NewString(),
		Topic:   c.topic,
		Event:   event,
		Payload: raw,
	})
}

// Close implements [Channel]. Repeated calls are no-ops.
func (c *wsChannel) Close() error {
	c.closeOnce.Do(func() {
		_ = c.conn.Close(websocket.StatusNormalClosure, "unsubscribed")
	})
	return nil
}

func (c *wsChannel) writeFrame(ctx context.Context, f frame) error {
	raw, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode realtime frame: %w", err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.Write(ctx, websocket.MessageText, raw)
}

// readPump decodes inbound frames until the connection drops, then emits a
// terminal error event and closes the event stream.
func (c *wsChannel) readPump() {
	defer close(c.events)

	ctx := context.Background()
	for {
		_, raw, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				c.events <- models.ChannelEvent{Event: EventClosed}
				return
			}
			c.log.Debug().
				Str("func", "readPump").
				Str("topic", c.topic).
				Err(err).
				Msg("realtime connection dropped")
			c.events <- models.ChannelEvent{Event: EventChannelError}
			return
		}

		var f frame
		if err = json.Unmarshal(raw, &f); err != nil {
			c.log.Debug().
				Str("func", "readPump").
				Str("topic", c.topic).
				Err(err).
				Msg("dropping malformed realtime frame")
			continue
		}
		if f.Event == "phx_reply" {
			if f.Ref != c.joinRef {
				continue
			}
			var reply struct {
				Status string `json:"status"`
			}
			_ = json.Unmarshal(f.Payload, &reply)
			if reply.Status == "ok" {
				c.events <- models.ChannelEvent{Event: EventSubscribed}
				continue
			}
			c.log.Warn().
				Str("func", "readPump").
				Str("topic", c.topic).
				Str("status", reply.Status).
				Msg("realtime join rejected")
			c.events <- models.ChannelEvent{Event: EventChannelError}
			_ = c.Close()
			return
		}
		if f.Event == "heartbeat" {
			continue
		}

		c.events <- models.ChannelEvent{Event: f.Event, Payload: f.Payload}
	}
}
