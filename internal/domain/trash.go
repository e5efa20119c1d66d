package domain

import "time"

// TrashRetentionDays is the retention window surfaced to the user. Items past
// the window are still listed; purge is a policy, not an enforced deadline.
const TrashRetentionDays = 30

type TrashKind string

const (
	TrashKindNote    TrashKind = "note"
	TrashKindVersion TrashKind = "version"
)

// TrashItem is one row of the combined trash listing, covering both trashed
// notes and trashed versions ordered by deletion date.
type TrashItem struct {
	Kind          TrashKind `json:"kind"`
	ID            string    `json:"id"`
	NoteID        string    `json:"note_id,omitempty"` // parent, set for versions
	Title         string    `json:"title,omitempty"`
	DeletedAt     time.Time `json:"deleted_at"`
	DaysRemaining int       `json:"days_remaining"`
}

// DaysRemaining computes the retention counter for an item deleted at the
// given time. The result may be zero or negative.
func DaysRemaining(deletedAt, now time.Time) int {
	elapsed := int(now.Sub(deletedAt).Hours() / 24)
	return TrashRetentionDays - elapsed
}
