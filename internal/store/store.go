package store

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"planboard/internal/domain"
)

// Store is the client-side cache of planning data. All reads go through
// Snapshot; all writes go through the action methods, which talk to the
// Gateway and only keep local state that the remote side confirmed. A
// mutation that the gateway rejects is rolled back before the action
// returns, so subscribers never settle on unconfirmed rows.
type Store struct {
	mu  sync.Mutex
	gw  Gateway
	log zerolog.Logger
	now func() time.Time

	user         *domain.User
	bullets      []domain.BulletTemplate
	notes        []domain.Note
	activeNoteID string

	versionsByNote map[string][]domain.NoteVersion
	commentsByNote map[string][]domain.Comment

	trashedNotes    []domain.Note
	trashedVersions []domain.NoteVersion

	loadingBullets bool
	loadingNotes   bool

	subscribers []Subscriber
}

// Subscriber receives a fresh snapshot after every state change. Callbacks
// run synchronously on the mutating goroutine and must not call back into
// the store.
type Subscriber func(Snapshot)

// Snapshot is an immutable view of the store. Slices and maps are copies;
// callers may keep them as long as they like.
type Snapshot struct {
	User         *domain.User
	Bullets      []domain.BulletTemplate
	Notes        []domain.Note
	ActiveNoteID string

	LoadingBullets bool
	LoadingNotes   bool
}

func New(gw Gateway, log zerolog.Logger) *Store {
	return &Store{
		gw:             gw,
		log:            log.With().Str("component", "store").Logger(),
		now:            time.Now,
		versionsByNote: make(map[string][]domain.NoteVersion),
		commentsByNote: make(map[string][]domain.Comment),
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		ActiveNoteID:   s.activeNoteID,
		LoadingBullets: s.loadingBullets,
		LoadingNotes:   s.loadingNotes,
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	snap.Bullets = append([]domain.BulletTemplate(nil), s.bullets...)
	snap.Notes = append([]domain.Note(nil), s.notes...)
	return snap
}

// Subscribe registers fn and immediately delivers the current snapshot.
func (s *Store) Subscribe(fn Subscriber) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	snap := s.snapshotLocked()
	s.mu.Unlock()
	fn(snap)
}

// notifyLocked must be called with s.mu held. It snapshots under the lock
// and delivers outside it.
func (s *Store) notifyLocked() {
	snap := s.snapshotLocked()
	subs := s.subscribers
	s.mu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
	s.mu.Lock()
}

// SetClock overrides the time source, used by trash retention math.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) noteIndex(id string) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}
