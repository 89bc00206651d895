package realtime

import (
	"encoding/json"
	"sort"
	"sync"

	"dario.cat/mergo"

	"github.com/pairkeep/pairkeep/internal/logger"
	"github.com/pairkeep/pairkeep/models"
)

// Data event names published on the couple's topics.
const (
	EventNewMood     = "new_mood"
	EventNoteCreated = "note_created"
)

// MoodCache holds the partner moods received over realtime, deduplicated by
// remote id. A re-delivered record merges into the stored one instead of
// appearing twice.
type MoodCache struct {
	mu   sync.RWMutex
	byID map[string]models.RemoteMood
}

// NewMoodCache returns an empty cache.
func NewMoodCache() *MoodCache {
	return &MoodCache{byID: make(map[string]models.RemoteMood)}
}

// Upsert merges mood into the cache and reports whether the id was new.
// Fields the incoming record leaves empty keep their stored values.
func (c *MoodCache) Upsert(mood models.RemoteMood) bool {
	if mood.ID == "" {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	existing, known := c.byID[mood.ID]
	if known {
		if err := mergo.Merge(&mood, existing); err != nil {
			// Keep the incoming record as-is when the merge fails.
			c.byID[mood.ID] = mood
			return false
		}
	}
	c.byID[mood.ID] = mood
	return !known
}

// All returns the cached moods ordered by creation time.
func (c *MoodCache) All() []models.RemoteMood {
	c.mu.RLock()
	defer c.mu.RUnlock()

	moods := make([]models.RemoteMood, 0, len(c.byID))
	for _, mood := range c.byID {
		moods = append(moods, mood)
	}
	sort.Slice(moods, func(i, j int) bool { return moods[i].CreatedAt < moods[j].CreatedAt })
	return moods
}

// Latest returns the newest cached mood, or nil when the cache is empty.
func (c *MoodCache) Latest() *models.RemoteMood {
	moods := c.All()
	if len(moods) == 0 {
		return nil
	}
	return &moods[len(moods)-1]
}

// NoteCache holds received love notes, deduplicated by id.
type NoteCache struct {
	mu   sync.RWMutex
	byID map[string]models.LoveNote
}

// NewNoteCache returns an empty cache.
func NewNoteCache() *NoteCache {
	return &NoteCache{byID: make(map[string]models.LoveNote)}
}

// Add stores the note and reports whether it was new. Re-delivered notes
// are dropped.
func (c *NoteCache) Add(note models.LoveNote) bool {
	if note.ID == "" {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, known := c.byID[note.ID]; known {
		return false
	}
	c.byID[note.ID] = note
	return true
}

// All returns the cached notes ordered by creation time.
func (c *NoteCache) All() []models.LoveNote {
	c.mu.RLock()
	defer c.mu.RUnlock()

	notes := make([]models.LoveNote, 0, len(c.byID))
	for _, note := range c.byID {
		notes = append(notes, note)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].CreatedAt < notes[j].CreatedAt })
	return notes
}

// NewMoodHandler returns a [Handler] that feeds mood events into cache.
// Events that fail to decode are logged and dropped.
func NewMoodHandler(cache *MoodCache, log *logger.Logger) Handler {
	return func(event models.ChannelEvent) {
		if event.Event != EventNewMood {
			return
		}

		var mood models.RemoteMood
		if err := json.Unmarshal(event.Payload, &mood); err != nil {
			log.Debug().
				Str("func", "NewMoodHandler").
				Err(err).
				Msg("dropping malformed mood event")
			return
		}
		cache.Upsert(mood)
	}
}

// NewNoteHandler returns a [Handler] that feeds note events into cache.
func NewNoteHandler(cache *NoteCache, log *logger.Logger) Handler {
	return func(event models.ChannelEvent) {
		if event.Event != EventNoteCreated {
			return
		}

		var note models.LoveNote
		if err := json.Unmarshal(event.Payload, &note); err != nil {
			log.Debug().
				Str("func", "NewNoteHandler").
				Err(err).
				Msg("dropping malformed note event")
			return
		}
		cache.Add(note)
	}
}
