package store

import (
	"encoding/json"

	"planboard/internal/domain"
	"planboard/internal/websocket"
)

// ApplyRemoteChange folds a change event from another device of the same
// user into the cache. Events for collections that were never fetched are
// ignored; the next fetch will pick them up anyway.
func (s *Store) ApplyRemoteChange(ev websocket.ChangeEvent) {
	switch ev.Entity {
	case "note":
		s.applyNoteChange(ev)
	case "version":
		s.applyVersionChange(ev)
	default:
		s.log.Debug().Str("entity", ev.Entity).Str("op", ev.Operation).Msg("ignoring remote change")
	}
}

func (s *Store) applyNoteChange(ev websocket.ChangeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch ev.Operation {
	case websocket.OpInsert, websocket.OpUpdate, websocket.OpRestore:
		var note domain.Note
		if err := json.Unmarshal(ev.Data, &note); err != nil {
			s.log.Error().Err(err).Str("note_id", ev.ID).Msg("bad note payload in change event")
			return
		}
		if ev.Operation == websocket.OpRestore {
			s.removeTrashedNote(note.ID)
		}
		if idx := s.noteIndex(note.ID); idx >= 0 {
			s.notes[idx] = note
		} else {
			s.notes = append(s.notes, note)
		}
	case websocket.OpSoftDelete:
		if idx := s.noteIndex(ev.ID); idx >= 0 {
			trashed := s.notes[idx]
			now := s.now()
			trashed.DeletedAt = &now
			s.trashedNotes = append(s.trashedNotes, trashed)
			s.notes = append(s.notes[:idx], s.notes[idx+1:]...)
		}
		if s.activeNoteID == ev.ID {
			s.activeNoteID = ""
		}
		delete(s.versionsByNote, ev.ID)
	case websocket.OpHardDelete:
		if idx := s.noteIndex(ev.ID); idx >= 0 {
			s.notes = append(s.notes[:idx], s.notes[idx+1:]...)
		}
		if s.activeNoteID == ev.ID {
			s.activeNoteID = ""
		}
		s.removeTrashedNote(ev.ID)
		delete(s.versionsByNote, ev.ID)
		delete(s.commentsByNote, ev.ID)
	}
	s.notifyLocked()
}

func (s *Store) applyVersionChange(ev websocket.ChangeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch ev.Operation {
	case websocket.OpInsert, websocket.OpRestore:
		var version domain.NoteVersion
		if err := json.Unmarshal(ev.Data, &version); err != nil {
			s.log.Error().Err(err).Str("version_id", ev.ID).Msg("bad version payload in change event")
			return
		}
		if ev.Operation == websocket.OpRestore {
			s.removeTrashedVersion(version.ID)
		}
		if versions, ok := s.versionsByNote[version.NoteID]; ok {
			replaced := false
			for i := range versions {
				if versions[i].ID == version.ID {
					versions[i] = version
					replaced = true
					break
				}
			}
			if !replaced {
				s.versionsByNote[version.NoteID] = append(versions, version)
			}
		}
	case websocket.OpSoftDelete:
		if versions, ok := s.versionsByNote[ev.ParentID]; ok {
			for i := range versions {
				if versions[i].ID == ev.ID {
					trashed := versions[i]
					now := s.now()
					trashed.DeletedAt = &now
					s.trashedVersions = append(s.trashedVersions, trashed)
					s.versionsByNote[ev.ParentID] = append(versions[:i], versions[i+1:]...)
					break
				}
			}
		}
	case websocket.OpHardDelete:
		s.removeTrashedVersion(ev.ID)
		if versions, ok := s.versionsByNote[ev.ParentID]; ok {
			for i := range versions {
				if versions[i].ID == ev.ID {
					s.versionsByNote[ev.ParentID] = append(versions[:i], versions[i+1:]...)
					break
				}
			}
		}
	}
	s.notifyLocked()
}
