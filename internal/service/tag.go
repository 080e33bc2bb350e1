package service

import (
	"context"
	"fmt"

	"github.com/pkordes/recipebox/internal/domain"
	"github.com/pkordes/recipebox/internal/repo"
)

// TagService exposes the seeded tag catalogue.
type TagService struct {
	tags repo.TagRepo
}

// NewTagService constructs a TagService backed by the provided TagRepo.
func NewTagService(tags repo.TagRepo) *TagService {
	return &TagService{tags: tags}
}

// List returns every tag ordered by cuisine.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TagService) List(ctx context.Context) ([]domain.Tag, error) {
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TagService.List: %w", err)
	}
	if tags == nil {
		return []domain.Tag{}, nil
	}
	return tags, nil
}
