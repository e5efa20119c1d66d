package domain

import "time"

type Comment struct {
	ID         string    `json:"id"`
	NoteID     string    `json:"note_id"`
	Author     string    `json:"author"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	IsResolved bool      `json:"is_resolved"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

type UpdateCommentRequest struct {
	Content    *string `json:"content"`
	IsResolved *bool   `json:"is_resolved"`
}
