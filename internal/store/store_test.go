package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"planboard/internal/domain"
)

type fakeGateway struct {
	bullets  []*domain.BulletTemplate
	notes    map[string]*domain.Note
	versions map[string]*domain.NoteVersion
	comments map[string]*domain.Comment

	failBullets bool
	failNotes   bool
	failUpdate  bool

	softDeletedNotes    []string
	softDeletedVersions []string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		notes:    make(map[string]*domain.Note),
		versions: make(map[string]*domain.NoteVersion),
		comments: make(map[string]*domain.Comment),
	}
}

func (g *fakeGateway) seedNote(id, title string) *domain.Note {
	n := &domain.Note{ID: id, Title: title, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	g.notes[id] = n
	return n
}

func (g *fakeGateway) seedVersion(id, noteID, content string) *domain.NoteVersion {
	v := &domain.NoteVersion{ID: id, NoteID: noteID, Content: content, CreatedAt: time.Now()}
	g.versions[id] = v
	return v
}

func (g *fakeGateway) ListBullets(ctx context.Context) ([]*domain.BulletTemplate, error) {
	if g.failBullets {
		return nil, errors.New("gateway down")
	}
	out := make([]*domain.BulletTemplate, len(g.bullets))
	for i, b := range g.bullets {
		copied := *b
		out[i] = &copied
	}
	return out, nil
}

func (g *fakeGateway) ListNotes(ctx context.Context) ([]*domain.Note, error) {
	if g.failNotes {
		return nil, errors.New("gateway down")
	}
	var out []*domain.Note
	for _, n := range g.notes {
		if n.DeletedAt == nil {
			copied := *n
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (g *fakeGateway) ListTrashedNotes(ctx context.Context) ([]*domain.Note, error) {
	var out []*domain.Note
	for _, n := range g.notes {
		if n.DeletedAt != nil {
			copied := *n
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (g *fakeGateway) InsertNote(ctx context.Context, req domain.CreateNoteRequest) (*domain.Note, error) {
	n := &domain.Note{
		ID:        "note-" + req.Title,
		Title:     req.Title,
		Content:   req.Content,
		Summary:   req.Summary,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	g.notes[n.ID] = n
	copied := *n
	return &copied, nil
}

func (g *fakeGateway) UpdateNote(ctx context.Context, id string, req domain.UpdateNoteRequest) (*domain.Note, error) {
	if g.failUpdate {
		return nil, errors.New("update rejected")
	}
	n, ok := g.notes[id]
	if !ok {
		return nil, errors.New("not found")
	}
	if req.Title != nil {
		n.Title = *req.Title
	}
	if req.Content != nil {
		n.Content = *req.Content
	}
	if req.Summary != nil {
		n.Summary = *req.Summary
	}
	n.UpdatedAt = time.Now()
	copied := *n
	return &copied, nil
}

func (g *fakeGateway) SoftDeleteNote(ctx context.Context, id string) error {
	n, ok := g.notes[id]
	if !ok {
		return errors.New("not found")
	}
	now := time.Now()
	n.DeletedAt = &now
	g.softDeletedNotes = append(g.softDeletedNotes, id)
	for _, v := range g.versions {
		if v.NoteID == id && v.DeletedAt == nil {
			v.DeletedAt = &now
		}
	}
	return nil
}

func (g *fakeGateway) RestoreNote(ctx context.Context, id string) (*domain.Note, error) {
	n, ok := g.notes[id]
	if !ok {
		return nil, errors.New("not found")
	}
	n.DeletedAt = nil
	copied := *n
	return &copied, nil
}

func (g *fakeGateway) HardDeleteNote(ctx context.Context, id string) error {
	delete(g.notes, id)
	for vid, v := range g.versions {
		if v.NoteID == id {
			delete(g.versions, vid)
		}
	}
	return nil
}

func (g *fakeGateway) ListVersions(ctx context.Context, noteID string) ([]*domain.NoteVersion, error) {
	var out []*domain.NoteVersion
	for _, v := range g.versions {
		if v.NoteID == noteID && v.DeletedAt == nil {
			copied := *v
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (g *fakeGateway) ListTrashedVersions(ctx context.Context) ([]*domain.NoteVersion, error) {
	var out []*domain.NoteVersion
	for _, v := range g.versions {
		if v.DeletedAt != nil {
			copied := *v
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (g *fakeGateway) InsertVersion(ctx context.Context, noteID string, req domain.CreateVersionRequest) (*domain.NoteVersion, error) {
	v := &domain.NoteVersion{
		ID:        "version-" + req.Content,
		NoteID:    noteID,
		Content:   req.Content,
		Summary:   req.Summary,
		CreatedAt: time.Now(),
	}
	g.versions[v.ID] = v
	copied := *v
	return &copied, nil
}

func (g *fakeGateway) SoftDeleteVersion(ctx context.Context, id string) error {
	v, ok := g.versions[id]
	if !ok {
		return errors.New("not found")
	}
	now := time.Now()
	v.DeletedAt = &now
	g.softDeletedVersions = append(g.softDeletedVersions, id)
	return nil
}

func (g *fakeGateway) RestoreVersion(ctx context.Context, id string) (*domain.NoteVersion, error) {
	v, ok := g.versions[id]
	if !ok {
		return nil, errors.New("not found")
	}
	if parent, ok := g.notes[v.NoteID]; ok && parent.DeletedAt != nil {
		return nil, errors.New("parent note is trashed")
	}
	v.DeletedAt = nil
	copied := *v
	return &copied, nil
}

func (g *fakeGateway) HardDeleteVersion(ctx context.Context, id string) error {
	delete(g.versions, id)
	return nil
}

func (g *fakeGateway) ListComments(ctx context.Context, noteID string) ([]*domain.Comment, error) {
	var out []*domain.Comment
	for _, c := range g.comments {
		if c.NoteID == noteID {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (g *fakeGateway) InsertComment(ctx context.Context, noteID string, req domain.CreateCommentRequest) (*domain.Comment, error) {
	c := &domain.Comment{ID: "comment-" + req.Content, NoteID: noteID, Content: req.Content, CreatedAt: time.Now()}
	g.comments[c.ID] = c
	copied := *c
	return &copied, nil
}

func (g *fakeGateway) UpdateComment(ctx context.Context, id string, req domain.UpdateCommentRequest) (*domain.Comment, error) {
	c, ok := g.comments[id]
	if !ok {
		return nil, errors.New("not found")
	}
	if req.Content != nil {
		c.Content = *req.Content
	}
	if req.IsResolved != nil {
		c.IsResolved = *req.IsResolved
	}
	copied := *c
	return &copied, nil
}

func (g *fakeGateway) HardDeleteComment(ctx context.Context, id string) error {
	delete(g.comments, id)
	return nil
}

func newTestStore(gw Gateway) *Store {
	return New(gw, zerolog.Nop())
}

func TestFetchBulletsResetsFlags(t *testing.T) {
	gw := newFakeGateway()
	gw.bullets = []*domain.BulletTemplate{
		{ID: "b1", Theme: "language", FiText: "fi", EnText: "en"},
		{ID: "b2", Theme: "social", FiText: "fi", EnText: "en"},
	}
	st := newTestStore(gw)

	if err := st.FetchBullets(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	st.SetBulletActive("b1", true)
	st.SetBulletHidden("b2", true)

	if err := st.FetchBullets(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, b := range st.Snapshot().Bullets {
		if b.Active || b.Hidden {
			t.Errorf("bullet %s flags not reset: active=%v hidden=%v", b.ID, b.Active, b.Hidden)
		}
	}
}

func TestFetchBulletsKeepsCacheOnError(t *testing.T) {
	gw := newFakeGateway()
	gw.bullets = []*domain.BulletTemplate{{ID: "b1", Theme: "arts", FiText: "fi", EnText: "en"}}
	st := newTestStore(gw)

	if err := st.FetchBullets(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	gw.failBullets = true
	if err := st.FetchBullets(context.Background()); err == nil {
		t.Fatal("expected fetch error")
	}

	snap := st.Snapshot()
	if len(snap.Bullets) != 1 || snap.Bullets[0].ID != "b1" {
		t.Errorf("expected cached bullets to survive failed fetch, got %v", snap.Bullets)
	}
	if snap.LoadingBullets {
		t.Error("loading flag should be cleared after failed fetch")
	}
}

func TestFetchNotesKeepsCacheOnError(t *testing.T) {
	gw := newFakeGateway()
	gw.seedNote("n1", "Week 34")
	st := newTestStore(gw)

	if err := st.FetchNotes(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	gw.failNotes = true
	if err := st.FetchNotes(context.Background()); err == nil {
		t.Fatal("expected fetch error")
	}
	if got := len(st.Snapshot().Notes); got != 1 {
		t.Errorf("expected 1 cached note, got %d", got)
	}
}

func TestCreateNoteAppendsAndActivates(t *testing.T) {
	gw := newFakeGateway()
	st := newTestStore(gw)

	note, err := st.CreateNote(context.Background(), domain.CreateNoteRequest{Title: "Week 35"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	snap := st.Snapshot()
	if len(snap.Notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(snap.Notes))
	}
	if snap.ActiveNoteID != note.ID {
		t.Errorf("expected new note to be active, got %q", snap.ActiveNoteID)
	}
}

func TestUpdateNoteRollsBackOnFailure(t *testing.T) {
	gw := newFakeGateway()
	gw.seedNote("n1", "Before")
	st := newTestStore(gw)
	if err := st.FetchNotes(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var sawOptimistic bool
	st.Subscribe(func(snap Snapshot) {
		for _, n := range snap.Notes {
			if n.ID == "n1" && n.Title == "After" {
				sawOptimistic = true
			}
		}
	})

	gw.failUpdate = true
	title := "After"
	if _, err := st.UpdateNote(context.Background(), "n1", domain.UpdateNoteRequest{Title: &title}); err == nil {
		t.Fatal("expected update error")
	}

	if !sawOptimistic {
		t.Error("expected subscribers to see the optimistic value before rollback")
	}
	snap := st.Snapshot()
	if snap.Notes[0].Title != "Before" {
		t.Errorf("expected rollback to pre-mutation title, got %q", snap.Notes[0].Title)
	}
}

func TestUpdateNoteAppliesServerEcho(t *testing.T) {
	gw := newFakeGateway()
	gw.seedNote("n1", "Before")
	st := newTestStore(gw)
	if err := st.FetchNotes(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	title := "After"
	updated, err := st.UpdateNote(context.Background(), "n1", domain.UpdateNoteRequest{Title: &title})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Title != "After" {
		t.Errorf("expected updated title, got %q", updated.Title)
	}
	if st.Snapshot().Notes[0].Title != "After" {
		t.Error("expected store to hold the confirmed row")
	}
}

func TestSoftDeleteNoteMovesToTrash(t *testing.T) {
	gw := newFakeGateway()
	gw.seedNote("n1", "Week 34")
	st := newTestStore(gw)
	st.SetClock(func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) })
	if err := st.FetchNotes(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	st.SetActiveNote("n1")

	if err := st.SoftDeleteNote(context.Background(), "n1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	snap := st.Snapshot()
	if len(snap.Notes) != 0 {
		t.Errorf("expected note removed from active list, got %d", len(snap.Notes))
	}
	if snap.ActiveNoteID != "" {
		t.Error("expected active note cleared")
	}

	items := st.TrashItems()
	if len(items) != 1 {
		t.Fatalf("expected 1 trash item, got %d", len(items))
	}
	if items[0].Kind != domain.TrashKindNote || items[0].ID != "n1" {
		t.Errorf("unexpected trash item %+v", items[0])
	}
	if items[0].DaysRemaining != domain.TrashRetentionDays {
		t.Errorf("expected full retention window, got %d", items[0].DaysRemaining)
	}
}

func TestRestoreNoteLeavesVersionsTrashed(t *testing.T) {
	gw := newFakeGateway()
	gw.seedNote("n1", "Week 34")
	gw.seedVersion("v1", "n1", "draft")
	st := newTestStore(gw)
	if err := st.FetchNotes(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := st.FetchVersions(context.Background(), "n1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := st.SoftDeleteNote(context.Background(), "n1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := st.RestoreNote(context.Background(), "n1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(st.Snapshot().Notes) != 1 {
		t.Fatal("expected note back in active list")
	}
	// The cascade trashed v1 remotely; restoring the note does not restore it.
	versions, err := st.FetchVersions(context.Background(), "n1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(versions) != 0 {
		t.Errorf("expected versions to stay trashed after note restore, got %d", len(versions))
	}
}

func TestPermanentDeleteNoteRemovesEverywhere(t *testing.T) {
	gw := newFakeGateway()
	gw.seedNote("n1", "Week 34")
	gw.seedVersion("v1", "n1", "draft")
	st := newTestStore(gw)
	if err := st.FetchNotes(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := st.FetchVersions(context.Background(), "n1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := st.PermanentDeleteNote(context.Background(), "n1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(st.Snapshot().Notes) != 0 {
		t.Error("expected note gone from active list")
	}
	if len(st.TrashItems()) != 0 {
		t.Error("expected trash to be empty")
	}
	if _, ok := st.Versions("n1"); ok {
		t.Error("expected version cache dropped")
	}
	if _, ok := gw.notes["n1"]; ok {
		t.Error("expected note gone from gateway")
	}
	if _, ok := gw.versions["v1"]; ok {
		t.Error("expected versions cascaded on the gateway")
	}
}

func TestTrashItemsOrderAndRetention(t *testing.T) {
	gw := newFakeGateway()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	old := now.AddDate(0, 0, -10)
	recent := now.AddDate(0, 0, -2)
	n := gw.seedNote("n1", "Old plan")
	n.DeletedAt = &old
	v := gw.seedVersion("v1", "n1", "draft")
	v.DeletedAt = &recent

	st := newTestStore(gw)
	st.SetClock(func() time.Time { return now })
	if err := st.FetchTrash(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	items := st.TrashItems()
	if len(items) != 2 {
		t.Fatalf("expected 2 trash items, got %d", len(items))
	}
	if items[0].ID != "v1" {
		t.Errorf("expected newest deletion first, got %s", items[0].ID)
	}
	if items[0].DaysRemaining != 28 {
		t.Errorf("expected 28 days remaining, got %d", items[0].DaysRemaining)
	}
	if items[1].DaysRemaining != 20 {
		t.Errorf("expected 20 days remaining, got %d", items[1].DaysRemaining)
	}
}

func TestSubscribeDeliversCurrentSnapshot(t *testing.T) {
	gw := newFakeGateway()
	gw.seedNote("n1", "Week 34")
	st := newTestStore(gw)
	if err := st.FetchNotes(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var calls int
	st.Subscribe(func(snap Snapshot) {
		calls++
		if calls == 1 && len(snap.Notes) != 1 {
			t.Errorf("expected initial snapshot with 1 note, got %d", len(snap.Notes))
		}
	})
	if calls != 1 {
		t.Fatalf("expected immediate delivery, got %d calls", calls)
	}
}
