package domain

import "time"

// BulletTemplate is a reusable bilingual phrase from the bullet library.
// Templates are immutable once seeded; Active and Hidden are client-side
// flags layered on top of fetched rows and are never persisted.
type BulletTemplate struct {
	ID            string    `json:"id"`
	Theme         string    `json:"theme" validate:"required"`
	FiText        string    `json:"fi_text" validate:"required"`
	EnText        string    `json:"en_text" validate:"required"`
	FiDescription string    `json:"fi_description"`
	EnDescription string    `json:"en_description"`
	CreatedAt     time.Time `json:"created_at"`

	Active bool `json:"-"`
	Hidden bool `json:"-"`
}
