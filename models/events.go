package models

import "encoding/json"

// ConnectionStatus describes the state of a realtime subscription as seen by
// consumers.
type ConnectionStatus int

const (
	StatusConnecting ConnectionStatus = iota
	StatusConnected
	StatusDisconnected
)

func (s ConnectionStatus) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	case StatusDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// ChannelEvent is one broadcast frame received on a realtime channel.
type ChannelEvent struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// WorkerMessageTypeCompleted is the one message type the agent recognizes
// from the out-of-process background-sync worker.
const WorkerMessageTypeCompleted = "BACKGROUND_SYNC_COMPLETED"

// WorkerMessage is the completion notification posted by the background-sync
// worker after it has uploaded pending entries out-of-process.
type WorkerMessage struct {
	Type         string `json:"type"`
	SuccessCount int    `json:"successCount"`
	FailCount    int    `json:"failCount"`
}

// Recognized reports whether the message carries the known completion type.
func (m WorkerMessage) Recognized() bool {
	return m.Type == WorkerMessageTypeCompleted
}
