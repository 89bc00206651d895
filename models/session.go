package models

import "time"

// Session is the cached authentication state handed to the sync core by the
// platform's auth layer. The core never performs credential flows; it only
// consumes the opaque token and the ids cached alongside it.
type Session struct {
	UserID      string    `json:"user_id"`
	PartnerID   string    `json:"partner_id,omitempty"`
	AccessToken string    `json:"access_token"`
	CachedAt    time.Time `json:"cached_at"`
}
