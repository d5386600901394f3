package org

import (
	"context"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

type Service struct {
	orgs *repository.OrgRepository
}

func NewService(orgs *repository.OrgRepository) *Service {
	return &Service{orgs: orgs}
}

// Create makes the organization and grants the creator an admin membership.
func (s *Service) Create(ctx context.Context, userID int64, req CreateOrgRequest) (*domain.Organization, error) {
	taken, err := s.orgs.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugTaken
	}

	org := &domain.Organization{
		Name: req.Name,
		Slug: req.Slug,
	}
	if err := s.orgs.CreateWithAdmin(ctx, org, userID); err != nil {
		return nil, err
	}
	return org, nil
}

// Get returns the organization and its member roster. Membership is checked
// by the route middleware before this runs.
func (s *Service) Get(ctx context.Context, orgID int64) (*OrgDetails, error) {
	org, err := s.orgs.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	memberships, err := s.orgs.ListMembers(ctx, orgID)
	if err != nil {
		return nil, err
	}

	members := make([]MemberPublic, 0, len(memberships))
	for _, m := range memberships {
		members = append(members, MemberPublic{
			UserID:    m.UserID,
			Email:     m.User.Email,
			FirstName: m.User.FirstName,
			LastName:  m.User.LastName,
			Role:      m.Role,
		})
	}

	return &OrgDetails{Organization: org, Members: members}, nil
}
