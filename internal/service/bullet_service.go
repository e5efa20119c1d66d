package service

import (
	"time"

	"planboard/internal/domain"
	"planboard/internal/repository"

	"github.com/google/uuid"
)

type BulletService struct {
	repo repository.BulletRepository
}

func NewBulletService(repo repository.BulletRepository) *BulletService {
	return &BulletService{repo: repo}
}

// List returns the full bilingual bullet library. The library is shared by
// all users and read-only at runtime.
func (s *BulletService) List() ([]*domain.BulletTemplate, error) {
	return s.repo.List()
}

// Seed loads the built-in library on first start. Existing rows win; seeding
// never overwrites.
func (s *BulletService) Seed(templates []*domain.BulletTemplate) error {
	existing, err := s.repo.List()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, t := range templates {
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		if t.CreatedAt.IsZero() {
			t.CreatedAt = time.Now()
		}
		if err := s.repo.Create(t); err != nil {
			return err
		}
	}

	return nil
}
