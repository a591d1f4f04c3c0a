// Package snapshot provides the durable key-value slots the record store
// flushes its collections into. Each slot holds one JSON document; the
// store owns serialization, a backend only moves bytes.
package snapshot

import "context"

// Slot names for the three persisted collections.
const (
	SlotUsers      = "hosteldesk:users"
	SlotComplaints = "hosteldesk:complaints"
	SlotSession    = "hosteldesk:session"
)

// Store is the persistence contract. Load returns ok=false when the slot
// has never been written — callers fall back to their default in that
// case. Save replaces the slot contents wholesale.
type Store interface {
	Load(ctx context.Context, slot string) (data []byte, ok bool, err error)
	Save(ctx context.Context, slot string, data []byte) error

	// Delete clears a slot. Used when the session ends so a restart does
	// not resurrect a logged-out identity.
	Delete(ctx context.Context, slot string) error
}
