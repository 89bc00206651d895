package models

import "time"

// SyncResult summarizes one drain of the local queue. It is constructed fresh
// per run and never persisted.
type SyncResult struct {
	Synced int      `json:"synced"`
	Failed int      `json:"failed"`
	Errors []string `json:"errors,omitempty"`
	Note   string   `json:"note,omitempty"`
}

// SyncStatus is the non-blocking status surface exposed to callers (UI,
// status endpoint). Pending is the count of unsynced local entries.
type SyncStatus struct {
	Online     bool       `json:"online"`
	Pending    int        `json:"pending"`
	LastRun    time.Time  `json:"last_run,omitzero"`
	LastResult SyncResult `json:"last_result"`
}
