package models

// LoveNote is a chat message exchanged between partners. Notes arrive over
// the realtime channel and are deduplicated by ID before merging into the
// in-memory list.
type LoveNote struct {
	ID          string `json:"id"`
	SenderID    string `json:"sender_id"`
	RecipientID string `json:"recipient_id"`
	Text        string `json:"text"`
	CreatedAt   string `json:"created_at"`
}
