package project

import (
	"context"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

type Service struct {
	projects *repository.ProjectRepository
}

func NewService(projects *repository.ProjectRepository) *Service {
	return &Service{projects: projects}
}

func (s *Service) Create(ctx context.Context, orgID int64, req CreateProjectRequest) (*domain.Project, error) {
	p := &domain.Project{
		OrganizationID: orgID,
		Title:          req.Title,
		Description:    req.Description,
	}
	if req.Color != "" {
		p.Color = req.Color
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, orgID int64) ([]domain.Project, error) {
	return s.projects.ListByOrg(ctx, orgID)
}
