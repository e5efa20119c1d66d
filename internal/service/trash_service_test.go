package service

import (
	"testing"
	"time"

	"planboard/internal/domain"
)

func TestTrashService_CombinedListing(t *testing.T) {
	noteRepo := newMockNoteRepo()
	versionRepo := newMockVersionRepo()
	noteService := NewNoteService(noteRepo, versionRepo, nil)
	trashService := NewTrashService(noteRepo, versionRepo)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	trashService.now = func() time.Time { return now }

	keeper, _ := noteService.Create("user1", &domain.CreateNoteRequest{Title: "Keeper", Content: "c"})
	version, _ := noteService.CreateVersion("user1", keeper.ID, &domain.CreateVersionRequest{Content: "snap"})
	goner, _ := noteService.Create("user1", &domain.CreateNoteRequest{Title: "Goner"})

	oldDeletion := now.AddDate(0, 0, -10)
	recentDeletion := now.AddDate(0, 0, -2)
	noteRepo.SoftDelete(goner.ID, oldDeletion)
	versionRepo.SoftDelete(version.ID, recentDeletion)

	items, err := trashService.List("user1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 trash items, got %d", len(items))
	}

	// Newest deletion first.
	if items[0].Kind != domain.TrashKindVersion || items[0].ID != version.ID {
		t.Errorf("expected version first, got %+v", items[0])
	}
	if items[0].DaysRemaining != 28 {
		t.Errorf("expected 28 days remaining, got %d", items[0].DaysRemaining)
	}
	if items[1].DaysRemaining != 20 {
		t.Errorf("expected 20 days remaining, got %d", items[1].DaysRemaining)
	}
	// Versions show the parent note's title.
	if items[0].Title != "Keeper" {
		t.Errorf("expected parent title on version row, got %q", items[0].Title)
	}
}

func TestTrashService_ScopesVersionsToOwner(t *testing.T) {
	noteRepo := newMockNoteRepo()
	versionRepo := newMockVersionRepo()
	noteService := NewNoteService(noteRepo, versionRepo, nil)
	trashService := NewTrashService(noteRepo, versionRepo)

	mine, _ := noteService.Create("user1", &domain.CreateNoteRequest{Title: "Mine", Content: "c"})
	theirs, _ := noteService.Create("user2", &domain.CreateNoteRequest{Title: "Theirs", Content: "c"})

	v1, _ := noteService.CreateVersion("user1", mine.ID, &domain.CreateVersionRequest{Content: "s"})
	v2, _ := noteService.CreateVersion("user2", theirs.ID, &domain.CreateVersionRequest{Content: "s"})

	deletedAt := time.Now()
	versionRepo.SoftDelete(v1.ID, deletedAt)
	versionRepo.SoftDelete(v2.ID, deletedAt)

	items, err := trashService.List("user1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(items) != 1 || items[0].ID != v1.ID {
		t.Errorf("expected only user1's trashed version, got %+v", items)
	}

	versions, err := trashService.ListVersions("user1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(versions) != 1 || versions[0].ID != v1.ID {
		t.Errorf("expected only user1's version rows, got %+v", versions)
	}
}

func TestTrashService_ItemsPastRetentionStillListed(t *testing.T) {
	noteRepo := newMockNoteRepo()
	versionRepo := newMockVersionRepo()
	noteService := NewNoteService(noteRepo, versionRepo, nil)
	trashService := NewTrashService(noteRepo, versionRepo)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	trashService.now = func() time.Time { return now }

	note, _ := noteService.Create("user1", &domain.CreateNoteRequest{Title: "Ancient"})
	noteRepo.SoftDelete(note.ID, now.AddDate(0, 0, -45))

	items, err := trashService.List("user1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected expired item still listed, got %d items", len(items))
	}
	if items[0].DaysRemaining != -15 {
		t.Errorf("expected negative retention counter, got %d", items[0].DaysRemaining)
	}
}
