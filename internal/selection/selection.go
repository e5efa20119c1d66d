package selection

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"planboard/internal/store"
)

type Kind string

const (
	KindNote    Kind = "note"
	KindVersion Kind = "version"
)

// Key identifies one selectable row.
type Key struct {
	Kind Kind
	ID   string
}

func NoteKey(id string) Key    { return Key{Kind: KindNote, ID: id} }
func VersionKey(id string) Key { return Key{Kind: KindVersion, ID: id} }

// Manager tracks which rows are checked for a bulk operation. Selection
// keeps a bidirectional parent index so the cascade rules stay cheap in
// both directions: selecting a note pulls in its versions, and deselecting
// a version drops the parent note from the selection without touching its
// siblings.
type Manager struct {
	mu  sync.Mutex
	st  *store.Store
	log zerolog.Logger

	selected map[Key]struct{}
	// children maps a selected note id to the version ids selected under
	// it; parents maps a selected version id back to its note id.
	children map[string]map[string]struct{}
	parents  map[string]string
}

func NewManager(st *store.Store, log zerolog.Logger) *Manager {
	return &Manager{
		st:       st,
		log:      log.With().Str("component", "selection").Logger(),
		selected: make(map[Key]struct{}),
		children: make(map[string]map[string]struct{}),
		parents:  make(map[string]string),
	}
}

// SelectNote includes a note and all of its known versions in the
// selection. Versions are fetched through the store if the note has never
// been expanded.
func (m *Manager) SelectNote(ctx context.Context, noteID string) error {
	versions, err := m.st.EnsureVersions(ctx, noteID)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selected[NoteKey(noteID)] = struct{}{}
	if m.children[noteID] == nil {
		m.children[noteID] = make(map[string]struct{})
	}
	for _, v := range versions {
		m.selected[VersionKey(v.ID)] = struct{}{}
		m.children[noteID][v.ID] = struct{}{}
		m.parents[v.ID] = noteID
	}
	return nil
}

// DeselectNote removes a note and every version selected under it.
func (m *Manager) DeselectNote(noteID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deselectNoteLocked(noteID)
}

func (m *Manager) deselectNoteLocked(noteID string) {
	delete(m.selected, NoteKey(noteID))
	for versionID := range m.children[noteID] {
		delete(m.selected, VersionKey(versionID))
		delete(m.parents, versionID)
	}
	delete(m.children, noteID)
}

// ToggleNote flips a note's selection, cascading either way.
func (m *Manager) ToggleNote(ctx context.Context, noteID string) error {
	m.mu.Lock()
	_, on := m.selected[NoteKey(noteID)]
	m.mu.Unlock()
	if on {
		m.DeselectNote(noteID)
		return nil
	}
	return m.SelectNote(ctx, noteID)
}

// ToggleVersion flips a single version. Deselecting a version also drops
// its parent note from the selection, because the note is no longer fully
// included; the sibling versions stay selected.
func (m *Manager) ToggleVersion(noteID, versionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := VersionKey(versionID)
	if _, on := m.selected[key]; on {
		delete(m.selected, key)
		if parent, ok := m.parents[versionID]; ok {
			delete(m.parents, versionID)
			if set, ok := m.children[parent]; ok {
				delete(set, versionID)
			}
			delete(m.selected, NoteKey(parent))
		}
		return
	}
	m.selected[key] = struct{}{}
	m.parents[versionID] = noteID
	if m.children[noteID] == nil {
		m.children[noteID] = make(map[string]struct{})
	}
	m.children[noteID][versionID] = struct{}{}
}

// Clear empties the selection.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selected = make(map[Key]struct{})
	m.children = make(map[string]map[string]struct{})
	m.parents = make(map[string]string)
}

func (m *Manager) IsSelected(key Key) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.selected[key]
	return ok
}

func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.selected)
}

// Selected returns the selection in a stable order: notes before versions,
// each group sorted by id.
func (m *Manager) Selected() []Key {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]Key, 0, len(m.selected))
	for key := range m.selected {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Kind != keys[j].Kind {
			return keys[i].Kind == KindNote
		}
		return keys[i].ID < keys[j].ID
	})
	return keys
}
