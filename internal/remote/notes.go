package remote

import (
	"context"
	"net/http"

	"planboard/internal/domain"
)

func (c *Client) ListNotes(ctx context.Context) ([]*domain.Note, error) {
	var notes []*domain.Note
	if err := c.call(ctx, http.MethodGet, apiPrefix+"/notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) ListTrashedNotes(ctx context.Context) ([]*domain.Note, error) {
	var notes []*domain.Note
	if err := c.call(ctx, http.MethodGet, apiPrefix+"/trash/notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) InsertNote(ctx context.Context, req domain.CreateNoteRequest) (*domain.Note, error) {
	var note domain.Note
	if err := c.call(ctx, http.MethodPost, apiPrefix+"/notes", req, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) GetNote(ctx context.Context, id string) (*domain.Note, error) {
	var note domain.Note
	if err := c.call(ctx, http.MethodGet, apiPrefix+"/notes/"+id, nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) UpdateNote(ctx context.Context, id string, req domain.UpdateNoteRequest) (*domain.Note, error) {
	var note domain.Note
	if err := c.call(ctx, http.MethodPatch, apiPrefix+"/notes/"+id, req, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) SoftDeleteNote(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, apiPrefix+"/notes/"+id, nil, nil)
}

func (c *Client) RestoreNote(ctx context.Context, id string) (*domain.Note, error) {
	var note domain.Note
	if err := c.call(ctx, http.MethodPost, apiPrefix+"/notes/"+id+"/restore", nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) HardDeleteNote(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, apiPrefix+"/notes/"+id+"/permanent", nil, nil)
}

func (c *Client) ListVersions(ctx context.Context, noteID string) ([]*domain.NoteVersion, error) {
	var versions []*domain.NoteVersion
	if err := c.call(ctx, http.MethodGet, apiPrefix+"/notes/"+noteID+"/versions", nil, &versions); err != nil {
		return nil, err
	}
	return versions, nil
}

func (c *Client) ListTrashedVersions(ctx context.Context) ([]*domain.NoteVersion, error) {
	var versions []*domain.NoteVersion
	if err := c.call(ctx, http.MethodGet, apiPrefix+"/trash/versions", nil, &versions); err != nil {
		return nil, err
	}
	return versions, nil
}

func (c *Client) InsertVersion(ctx context.Context, noteID string, req domain.CreateVersionRequest) (*domain.NoteVersion, error) {
	var version domain.NoteVersion
	if err := c.call(ctx, http.MethodPost, apiPrefix+"/notes/"+noteID+"/versions", req, &version); err != nil {
		return nil, err
	}
	return &version, nil
}

func (c *Client) SoftDeleteVersion(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, apiPrefix+"/versions/"+id, nil, nil)
}

func (c *Client) RestoreVersion(ctx context.Context, id string) (*domain.NoteVersion, error) {
	var version domain.NoteVersion
	if err := c.call(ctx, http.MethodPost, apiPrefix+"/versions/"+id+"/restore", nil, &version); err != nil {
		return nil, err
	}
	return &version, nil
}

func (c *Client) HardDeleteVersion(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, apiPrefix+"/versions/"+id+"/permanent", nil, nil)
}

// ListTrash returns the server-assembled combined trash view.
func (c *Client) ListTrash(ctx context.Context) ([]*domain.TrashItem, error) {
	var items []*domain.TrashItem
	if err := c.call(ctx, http.MethodGet, apiPrefix+"/trash", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) ListBullets(ctx context.Context) ([]*domain.BulletTemplate, error) {
	var bullets []*domain.BulletTemplate
	if err := c.call(ctx, http.MethodGet, apiPrefix+"/bullets", nil, &bullets); err != nil {
		return nil, err
	}
	return bullets, nil
}

func (c *Client) ListComments(ctx context.Context, noteID string) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	if err := c.call(ctx, http.MethodGet, apiPrefix+"/notes/"+noteID+"/comments", nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *Client) InsertComment(ctx context.Context, noteID string, req domain.CreateCommentRequest) (*domain.Comment, error) {
	var comment domain.Comment
	if err := c.call(ctx, http.MethodPost, apiPrefix+"/notes/"+noteID+"/comments", req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *Client) UpdateComment(ctx context.Context, id string, req domain.UpdateCommentRequest) (*domain.Comment, error) {
	var comment domain.Comment
	if err := c.call(ctx, http.MethodPatch, apiPrefix+"/comments/"+id, req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *Client) HardDeleteComment(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, apiPrefix+"/comments/"+id, nil, nil)
}
