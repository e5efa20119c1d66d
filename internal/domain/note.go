package domain

import "time"

type Note struct {
	ID        string     `json:"id"`
	Owner     string     `json:"owner"`
	Title     string     `json:"title"`
	Content   string     `json:"content,omitempty"`
	Summary   string     `json:"summary,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Trashed reports whether the note currently sits in the trash.
func (n *Note) Trashed() bool {
	return n.DeletedAt != nil
}

type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Summary string `json:"summary"`
}

type UpdateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Summary *string `json:"summary"`
}
