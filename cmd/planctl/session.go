package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"planboard/internal/domain"
)

// sessionPath resolves where planctl persists its tokens between runs.
func sessionPath() (string, error) {
	if p := os.Getenv("PLANCTL_SESSION_FILE"); p != "" {
		return p, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "planctl", "session.json"), nil
}

func loadSession() (*domain.Session, error) {
	path, err := sessionPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func persistSession(session *domain.Session) {
	path, err := sessionPath()
	if err != nil {
		return
	}
	if session == nil {
		os.Remove(path)
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return
	}
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return
	}
	os.WriteFile(path, data, 0o600)
}
