package store

import (
	"context"

	"planboard/internal/domain"
)

// Gateway is the store's view of the remote data service: row-level CRUD
// with soft-delete semantics. The remote side owns the durable copies and is
// the source of truth on conflict.
type Gateway interface {
	NoteGateway
	VersionGateway
	BulletGateway
	CommentGateway
}

type NoteGateway interface {
	ListNotes(ctx context.Context) ([]*domain.Note, error)
	ListTrashedNotes(ctx context.Context) ([]*domain.Note, error)
	InsertNote(ctx context.Context, req domain.CreateNoteRequest) (*domain.Note, error)
	UpdateNote(ctx context.Context, id string, req domain.UpdateNoteRequest) (*domain.Note, error)
	SoftDeleteNote(ctx context.Context, id string) error
	RestoreNote(ctx context.Context, id string) (*domain.Note, error)
	HardDeleteNote(ctx context.Context, id string) error
}

type VersionGateway interface {
	ListVersions(ctx context.Context, noteID string) ([]*domain.NoteVersion, error)
	ListTrashedVersions(ctx context.Context) ([]*domain.NoteVersion, error)
	InsertVersion(ctx context.Context, noteID string, req domain.CreateVersionRequest) (*domain.NoteVersion, error)
	SoftDeleteVersion(ctx context.Context, id string) error
	RestoreVersion(ctx context.Context, id string) (*domain.NoteVersion, error)
	HardDeleteVersion(ctx context.Context, id string) error
}

type BulletGateway interface {
	ListBullets(ctx context.Context) ([]*domain.BulletTemplate, error)
}

type CommentGateway interface {
	ListComments(ctx context.Context, noteID string) ([]*domain.Comment, error)
	InsertComment(ctx context.Context, noteID string, req domain.CreateCommentRequest) (*domain.Comment, error)
	UpdateComment(ctx context.Context, id string, req domain.UpdateCommentRequest) (*domain.Comment, error)
	HardDeleteComment(ctx context.Context, id string) error
}

// AuthGateway is the session side of the remote service. Password sign-in is
// reserved for the fixed guest credential; everyone else arrives through a
// magic link gated by the server-side allowlist.
type AuthGateway interface {
	GetSession(ctx context.Context) (*domain.Session, error)
	OnSessionChange(fn func(*domain.Session))
	SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error)
	SignInWithMagicLink(ctx context.Context, email, redirectTo string) error
	SignOut(ctx context.Context) error
}
