package domain

import "github.com/google/uuid"

// RevocationEntry marks that every token issued to the user before
// RevokedAt (unix milliseconds) is no longer trusted. Entries are
// append-only in the durable log; only the newest one per user matters
// for validity checks.
type RevocationEntry struct {
	UserID    uuid.UUID `json:"user_id"`
	RevokedAt int64     `json:"revoked_at"`
}
