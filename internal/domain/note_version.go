package domain

import "time"

// NoteVersion is a content snapshot belonging to exactly one note. A version
// cannot be active while its parent note is trashed.
type NoteVersion struct {
	ID        string     `json:"id"`
	NoteID    string     `json:"note_id"`
	Content   string     `json:"content"`
	Summary   string     `json:"summary,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

func (v *NoteVersion) Trashed() bool {
	return v.DeletedAt != nil
}

type CreateVersionRequest struct {
	Content string `json:"content" validate:"required"`
	Summary string `json:"summary"`
}
