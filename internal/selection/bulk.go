package selection

import "context"

// bulkPlan splits the selection into the rows each bulk operation acts on.
// Versions whose parent note is also selected are skipped when the note
// operation already covers them.
type bulkPlan struct {
	notes    []string
	versions []string // version id -> parent via m.parents
}

func (m *Manager) plan(skipCoveredVersions bool) bulkPlan {
	m.mu.Lock()
	defer m.mu.Unlock()
	var p bulkPlan
	for _, key := range m.selectedLocked() {
		switch key.Kind {
		case KindNote:
			p.notes = append(p.notes, key.ID)
		case KindVersion:
			if skipCoveredVersions {
				if parent, ok := m.parents[key.ID]; ok {
					if _, noteSelected := m.selected[NoteKey(parent)]; noteSelected {
						continue
					}
				}
			}
			p.versions = append(p.versions, key.ID)
		}
	}
	return p
}

func (m *Manager) selectedLocked() []Key {
	keys := make([]Key, 0, len(m.selected))
	for key := range m.selected {
		keys = append(keys, key)
	}
	return keys
}

// BulkSoftDelete trashes every selected row. Notes go first and cascade to
// their versions, so versions covered by a selected note are not deleted
// twice. The operation is best effort: every row is attempted and the
// first error is returned. The selection is cleared afterwards either way.
func (m *Manager) BulkSoftDelete(ctx context.Context) error {
	p := m.plan(true)
	var firstErr error
	for _, noteID := range p.notes {
		if err := m.st.SoftDeleteNote(ctx, noteID); err != nil {
			m.log.Error().Err(err).Str("note_id", noteID).Msg("bulk soft delete failed for note")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	for _, versionID := range p.versions {
		noteID := m.parentOf(versionID)
		if err := m.st.SoftDeleteVersion(ctx, noteID, versionID); err != nil {
			m.log.Error().Err(err).Str("version_id", versionID).Msg("bulk soft delete failed for version")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	m.Clear()
	return firstErr
}

// BulkRestore brings every selected row back from the trash. Notes are
// restored before versions so a version restore never races its own parent
// coming back.
func (m *Manager) BulkRestore(ctx context.Context) error {
	p := m.plan(false)
	var firstErr error
	for _, noteID := range p.notes {
		if _, err := m.st.RestoreNote(ctx, noteID); err != nil {
			m.log.Error().Err(err).Str("note_id", noteID).Msg("bulk restore failed for note")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	for _, versionID := range p.versions {
		if _, err := m.st.RestoreVersion(ctx, versionID); err != nil {
			m.log.Error().Err(err).Str("version_id", versionID).Msg("bulk restore failed for version")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	m.Clear()
	return firstErr
}

// BulkPermanentDelete erases every selected row for good. A selected note
// covers its versions through the server-side cascade.
func (m *Manager) BulkPermanentDelete(ctx context.Context) error {
	p := m.plan(true)
	var firstErr error
	for _, noteID := range p.notes {
		if err := m.st.PermanentDeleteNote(ctx, noteID); err != nil {
			m.log.Error().Err(err).Str("note_id", noteID).Msg("bulk permanent delete failed for note")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	for _, versionID := range p.versions {
		if err := m.st.PermanentDeleteVersion(ctx, versionID); err != nil {
			m.log.Error().Err(err).Str("version_id", versionID).Msg("bulk permanent delete failed for version")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	m.Clear()
	return firstErr
}

func (m *Manager) parentOf(versionID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.parents[versionID]
}
