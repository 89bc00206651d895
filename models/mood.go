package models

import (
	"fmt"
	"time"
)

// DayFormat is the calendar-day key format used for the one-entry-per-day
// constraint on mood entries.
const DayFormat = "2006-01-02"

// MoodEntry is a locally captured mood record awaiting upload.
//
// Invariants:
//   - Synced == true implies RemoteID != "".
//   - At most one entry exists per (OwnerID, CapturedDay).
type MoodEntry struct {
	LocalID     int64     `json:"local_id"`
	OwnerID     string    `json:"owner_id"`
	Moods       []string  `json:"moods"`
	Note        string    `json:"note"`
	CapturedDay string    `json:"captured_day"`
	CapturedAt  time.Time `json:"captured_at"`
	Synced      bool      `json:"synced"`
	RemoteID    string    `json:"remote_id,omitempty"`
}

// PrimaryMood returns the first selected mood. Kept as a single column for
// compatibility with clients that predate multi-mood entries.
func (m MoodEntry) PrimaryMood() string {
	if len(m.Moods) == 0 {
		return ""
	}
	return m.Moods[0]
}

// Day returns the calendar-day key for t.
func Day(t time.Time) string {
	return t.Format(DayFormat)
}

// RemoteMood is a mood record as returned by the hosted data service.
type RemoteMood struct {
	ID          string   `json:"id"`
	UserID      string   `json:"user_id"`
	MoodType    string   `json:"mood_type"`
	MoodTypes   []string `json:"mood_types,omitempty"`
	Note        string   `json:"note,omitempty"`
	CapturedDay string   `json:"captured_day,omitempty"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
}

// Validate checks the record against the response schema the service is
// expected to return. A failure here means the call succeeded but the server
// returned an unexpected shape.
func (r RemoteMood) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("remote mood: missing id")
	}
	if r.UserID == "" {
		return fmt.Errorf("remote mood: missing user_id")
	}
	if r.MoodType == "" {
		return fmt.Errorf("remote mood: missing mood_type")
	}
	if r.CreatedAt == "" {
		return fmt.Errorf("remote mood: missing created_at")
	}
	if _, err := time.Parse(time.RFC3339, r.CreatedAt); err != nil {
		return fmt.Errorf("remote mood: bad created_at %q: %w", r.CreatedAt, err)
	}
	return nil
}

// MoodInsert is the payload sent to the hosted service when uploading a
// locally captured entry.
type MoodInsert struct {
	UserID      string   `json:"user_id"`
	MoodType    string   `json:"mood_type"`
	MoodTypes   []string `json:"mood_types,omitempty"`
	Note        string   `json:"note,omitempty"`
	CapturedDay string   `json:"captured_day"`
	CreatedAt   string   `json:"created_at"`
}

// InsertFrom builds the remote insert payload for a local entry.
func InsertFrom(entry MoodEntry) MoodInsert {
	return MoodInsert{
		UserID:      entry.OwnerID,
		MoodType:    entry.PrimaryMood(),
		MoodTypes:   entry.Moods,
		Note:        entry.Note,
		CapturedDay: entry.CapturedDay,
		CreatedAt:   entry.CapturedAt.UTC().Format(time.RFC3339),
	}
}
