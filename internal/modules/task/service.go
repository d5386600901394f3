package task

import (
	"context"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

const (
	EventTaskCreated = "task.created"
	EventTaskUpdated = "task.updated"
	EventTaskDeleted = "task.deleted"
)

type Service struct {
	tasks    *repository.TaskRepository
	sections *repository.SectionRepository
	members  MembershipReader
	events   EventPublisher
}

func NewService(
	tasks *repository.TaskRepository,
	sections *repository.SectionRepository,
	members MembershipReader,
	events EventPublisher,
) *Service {
	return &Service{
		tasks:    tasks,
		sections: sections,
		members:  members,
		events:   events,
	}
}

func (s *Service) Create(ctx context.Context, orgID, projectID int64, req CreateTaskRequest) (*domain.Task, error) {
	if err := s.checkSection(ctx, req.SectionID, projectID); err != nil {
		return nil, err
	}
	if err := s.checkAssignee(ctx, req.AssigneeID, orgID); err != nil {
		return nil, err
	}

	t := &domain.Task{
		ProjectID:   projectID,
		SectionID:   req.SectionID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		AssigneeID:  req.AssigneeID,
	}
	if req.Status != "" {
		t.Status = domain.TaskStatus(req.Status)
	}
	if req.Priority != "" {
		t.Priority = domain.TaskPriority(req.Priority)
	}
	if req.Position != nil {
		t.Position = *req.Position
	}

	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}

	s.events.PublishTaskEvent(ctx, orgID, EventTaskCreated, t)
	return t, nil
}

func (s *Service) List(ctx context.Context, projectID int64) ([]domain.Task, error) {
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *Service) Update(ctx context.Context, orgID, taskID int64, req UpdateTaskRequest) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if req.SectionID != nil {
		if err := s.checkSection(ctx, *req.SectionID, t.ProjectID); err != nil {
			return nil, err
		}
		t.SectionID = *req.SectionID
	}
	if req.AssigneeID != nil {
		if err := s.checkAssignee(ctx, req.AssigneeID, orgID); err != nil {
			return nil, err
		}
		t.AssigneeID = req.AssigneeID
		t.Assignee = nil
	}
	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Status != nil {
		t.Status = domain.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		t.Priority = domain.TaskPriority(*req.Priority)
	}
	if req.DueDate != nil {
		t.DueDate = req.DueDate
	}
	if req.Position != nil {
		t.Position = *req.Position
	}

	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}

	s.events.PublishTaskEvent(ctx, orgID, EventTaskUpdated, t)
	return t, nil
}

func (s *Service) Delete(ctx context.Context, orgID, taskID int64) error {
	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return err
	}

	s.events.PublishTaskEvent(ctx, orgID, EventTaskDeleted, t)
	return nil
}

func (s *Service) checkSection(ctx context.Context, sectionID, projectID int64) error {
	section, err := s.sections.GetByID(ctx, sectionID)
	if err != nil {
		return ErrSectionNotInProject
	}
	if section.ProjectID != projectID {
		return ErrSectionNotInProject
	}
	return nil
}

func (s *Service) checkAssignee(ctx context.Context, assigneeID *int64, orgID int64) error {
	if assigneeID == nil {
		return nil
	}
	member, err := s.members.IsMember(ctx, *assigneeID, orgID)
	if err != nil {
		return err
	}
	if !member {
		return ErrAssigneeNotMember
	}
	return nil
}
