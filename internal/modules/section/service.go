package section

import (
	"context"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

type Service struct {
	sections *repository.SectionRepository
}

func NewService(sections *repository.SectionRepository) *Service {
	return &Service{sections: sections}
}

func (s *Service) Create(ctx context.Context, projectID int64, req CreateSectionRequest) (*domain.Section, error) {
	sec := &domain.Section{
		ProjectID: projectID,
		Title:     req.Title,
	}
	if req.Position != nil {
		sec.Position = *req.Position
	}
	if err := s.sections.Create(ctx, sec); err != nil {
		return nil, err
	}
	return sec, nil
}

// Update applies only the fields the caller sent.
func (s *Service) Update(ctx context.Context, sectionID int64, req UpdateSectionRequest) (*domain.Section, error) {
	sec, err := s.sections.GetByID(ctx, sectionID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		sec.Title = *req.Title
	}
	if req.Position != nil {
		sec.Position = *req.Position
	}

	if err := s.sections.Update(ctx, sec); err != nil {
		return nil, err
	}
	return sec, nil
}
