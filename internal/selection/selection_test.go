package selection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"planboard/internal/domain"
	"planboard/internal/store"
)

// selectionGateway is a minimal in-memory gateway for driving the store
// under the selection manager.
type selectionGateway struct {
	notes    map[string]*domain.Note
	versions map[string]*domain.NoteVersion

	failNoteDelete map[string]error

	noteDeletes    []string
	versionDeletes []string
	noteRestores   []string
	noteHardDels   []string
	versionHards   []string
}

func newSelectionGateway() *selectionGateway {
	return &selectionGateway{
		notes:          make(map[string]*domain.Note),
		versions:       make(map[string]*domain.NoteVersion),
		failNoteDelete: make(map[string]error),
	}
}

func (g *selectionGateway) seed(noteID string, versionIDs ...string) {
	g.notes[noteID] = &domain.Note{ID: noteID, Title: noteID}
	for _, vid := range versionIDs {
		g.versions[vid] = &domain.NoteVersion{ID: vid, NoteID: noteID, Content: vid}
	}
}

func (g *selectionGateway) ListNotes(ctx context.Context) ([]*domain.Note, error) {
	var out []*domain.Note
	for _, n := range g.notes {
		if n.DeletedAt == nil {
			out = append(out, n)
		}
	}
	return out, nil
}

func (g *selectionGateway) ListTrashedNotes(ctx context.Context) ([]*domain.Note, error) {
	var out []*domain.Note
	for _, n := range g.notes {
		if n.DeletedAt != nil {
			out = append(out, n)
		}
	}
	return out, nil
}

func (g *selectionGateway) InsertNote(ctx context.Context, req domain.CreateNoteRequest) (*domain.Note, error) {
	return nil, errors.New("not implemented")
}

func (g *selectionGateway) UpdateNote(ctx context.Context, id string, req domain.UpdateNoteRequest) (*domain.Note, error) {
	return nil, errors.New("not implemented")
}

func (g *selectionGateway) SoftDeleteNote(ctx context.Context, id string) error {
	if err := g.failNoteDelete[id]; err != nil {
		return err
	}
	now := time.Now()
	g.notes[id].DeletedAt = &now
	g.noteDeletes = append(g.noteDeletes, id)
	return nil
}

func (g *selectionGateway) RestoreNote(ctx context.Context, id string) (*domain.Note, error) {
	n, ok := g.notes[id]
	if !ok {
		return nil, errors.New("not found")
	}
	n.DeletedAt = nil
	g.noteRestores = append(g.noteRestores, id)
	return n, nil
}

func (g *selectionGateway) HardDeleteNote(ctx context.Context, id string) error {
	delete(g.notes, id)
	g.noteHardDels = append(g.noteHardDels, id)
	return nil
}

func (g *selectionGateway) ListVersions(ctx context.Context, noteID string) ([]*domain.NoteVersion, error) {
	var out []*domain.NoteVersion
	for _, v := range g.versions {
		if v.NoteID == noteID && v.DeletedAt == nil {
			out = append(out, v)
		}
	}
	return out, nil
}

func (g *selectionGateway) ListTrashedVersions(ctx context.Context) ([]*domain.NoteVersion, error) {
	var out []*domain.NoteVersion
	for _, v := range g.versions {
		if v.DeletedAt != nil {
			out = append(out, v)
		}
	}
	return out, nil
}

func (g *selectionGateway) InsertVersion(ctx context.Context, noteID string, req domain.CreateVersionRequest) (*domain.NoteVersion, error) {
	return nil, errors.New("not implemented")
}

func (g *selectionGateway) SoftDeleteVersion(ctx context.Context, id string) error {
	now := time.Now()
	g.versions[id].DeletedAt = &now
	g.versionDeletes = append(g.versionDeletes, id)
	return nil
}

func (g *selectionGateway) RestoreVersion(ctx context.Context, id string) (*domain.NoteVersion, error) {
	v, ok := g.versions[id]
	if !ok {
		return nil, errors.New("not found")
	}
	v.DeletedAt = nil
	return v, nil
}

func (g *selectionGateway) HardDeleteVersion(ctx context.Context, id string) error {
	delete(g.versions, id)
	g.versionHards = append(g.versionHards, id)
	return nil
}

func (g *selectionGateway) ListBullets(ctx context.Context) ([]*domain.BulletTemplate, error) {
	return nil, nil
}

func (g *selectionGateway) ListComments(ctx context.Context, noteID string) ([]*domain.Comment, error) {
	return nil, nil
}

func (g *selectionGateway) InsertComment(ctx context.Context, noteID string, req domain.CreateCommentRequest) (*domain.Comment, error) {
	return nil, errors.New("not implemented")
}

func (g *selectionGateway) UpdateComment(ctx context.Context, id string, req domain.UpdateCommentRequest) (*domain.Comment, error) {
	return nil, errors.New("not implemented")
}

func (g *selectionGateway) HardDeleteComment(ctx context.Context, id string) error {
	return nil
}

func newTestManager(gw *selectionGateway) (*Manager, *store.Store) {
	st := store.New(gw, zerolog.Nop())
	return NewManager(st, zerolog.Nop()), st
}

func TestSelectNoteIncludesVersions(t *testing.T) {
	gw := newSelectionGateway()
	gw.seed("n1", "v1", "v2")
	m, _ := newTestManager(gw)

	if err := m.SelectNote(context.Background(), "n1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if m.Count() != 3 {
		t.Fatalf("expected note plus 2 versions selected, got %d", m.Count())
	}
	if !m.IsSelected(NoteKey("n1")) || !m.IsSelected(VersionKey("v1")) || !m.IsSelected(VersionKey("v2")) {
		t.Error("expected n1, v1 and v2 selected")
	}
}

func TestDeselectVersionDropsParentOnly(t *testing.T) {
	gw := newSelectionGateway()
	gw.seed("n1", "v1", "v2")
	m, _ := newTestManager(gw)

	if err := m.SelectNote(context.Background(), "n1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	m.ToggleVersion("n1", "v1")

	if m.IsSelected(NoteKey("n1")) {
		t.Error("expected parent note deselected after child removal")
	}
	if m.IsSelected(VersionKey("v1")) {
		t.Error("expected v1 deselected")
	}
	if !m.IsSelected(VersionKey("v2")) {
		t.Error("expected sibling v2 to stay selected")
	}
}

func TestToggleNoteTwiceClearsCascade(t *testing.T) {
	gw := newSelectionGateway()
	gw.seed("n1", "v1")
	m, _ := newTestManager(gw)

	if err := m.ToggleNote(context.Background(), "n1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := m.ToggleNote(context.Background(), "n1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if m.Count() != 0 {
		t.Errorf("expected empty selection, got %d", m.Count())
	}
}

func TestBulkSoftDeleteSkipsCoveredVersions(t *testing.T) {
	gw := newSelectionGateway()
	gw.seed("n1", "v1", "v2")
	m, st := newTestManager(gw)
	if err := st.FetchNotes(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := m.SelectNote(context.Background(), "n1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := m.BulkSoftDelete(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(gw.noteDeletes) != 1 || gw.noteDeletes[0] != "n1" {
		t.Errorf("expected single note delete, got %v", gw.noteDeletes)
	}
	// The note cascade covers v1 and v2; no direct version deletes.
	if len(gw.versionDeletes) != 0 {
		t.Errorf("expected no direct version deletes, got %v", gw.versionDeletes)
	}
	if m.Count() != 0 {
		t.Error("expected selection cleared after bulk operation")
	}
}

func TestBulkSoftDeleteLoneVersion(t *testing.T) {
	gw := newSelectionGateway()
	gw.seed("n1", "v1")
	m, st := newTestManager(gw)
	if _, err := st.FetchVersions(context.Background(), "n1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	m.ToggleVersion("n1", "v1")
	if err := m.BulkSoftDelete(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(gw.noteDeletes) != 0 {
		t.Errorf("expected no note deletes, got %v", gw.noteDeletes)
	}
	if len(gw.versionDeletes) != 1 || gw.versionDeletes[0] != "v1" {
		t.Errorf("expected v1 deleted, got %v", gw.versionDeletes)
	}
}

func TestBulkSoftDeleteReturnsFirstErrorAfterAttemptingAll(t *testing.T) {
	gw := newSelectionGateway()
	gw.seed("n1")
	gw.seed("n2")
	failure := errors.New("n1 rejected")
	gw.failNoteDelete["n1"] = failure
	m, st := newTestManager(gw)
	if err := st.FetchNotes(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := m.SelectNote(context.Background(), "n1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := m.SelectNote(context.Background(), "n2"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	err := m.BulkSoftDelete(context.Background())
	if !errors.Is(err, failure) {
		t.Fatalf("expected first error surfaced, got %v", err)
	}
	// n2 was still attempted despite the n1 failure.
	if len(gw.noteDeletes) != 1 || gw.noteDeletes[0] != "n2" {
		t.Errorf("expected n2 deleted despite n1 failure, got %v", gw.noteDeletes)
	}
	if m.Count() != 0 {
		t.Error("expected selection cleared even after errors")
	}
}

func TestBulkOperationsOnEmptySelection(t *testing.T) {
	gw := newSelectionGateway()
	m, _ := newTestManager(gw)

	if err := m.BulkSoftDelete(context.Background()); err != nil {
		t.Errorf("empty bulk soft delete should be a no-op, got %v", err)
	}
	if err := m.BulkRestore(context.Background()); err != nil {
		t.Errorf("empty bulk restore should be a no-op, got %v", err)
	}
	if err := m.BulkPermanentDelete(context.Background()); err != nil {
		t.Errorf("empty bulk permanent delete should be a no-op, got %v", err)
	}
	if len(gw.noteDeletes)+len(gw.versionDeletes)+len(gw.noteHardDels) != 0 {
		t.Error("expected no gateway calls")
	}
}

func TestBulkPermanentDeleteCascades(t *testing.T) {
	gw := newSelectionGateway()
	gw.seed("n1", "v1")
	m, st := newTestManager(gw)
	if err := st.FetchNotes(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := m.SelectNote(context.Background(), "n1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := m.BulkPermanentDelete(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(gw.noteHardDels) != 1 {
		t.Errorf("expected one hard delete, got %v", gw.noteHardDels)
	}
	if len(gw.versionHards) != 0 {
		t.Errorf("version hard deletes should ride the note cascade, got %v", gw.versionHards)
	}
}
