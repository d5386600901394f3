package repository

import (
	"context"

	"taskboard/internal/domain"

	"gorm.io/gorm"
)

type SectionRepository struct {
	db *gorm.DB
}

func NewSectionRepository(db *gorm.DB) *SectionRepository {
	return &SectionRepository{db: db}
}

func (r *SectionRepository) Create(ctx context.Context, s *domain.Section) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SectionRepository) GetByID(ctx context.Context, id int64) (*domain.Section, error) {
	var s domain.Section
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SectionRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.Section, error) {
	var sections []domain.Section
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("position ASC").
		Find(&sections).Error
	return sections, err
}

func (r *SectionRepository) Update(ctx context.Context, s *domain.Section) error {
	return r.db.WithContext(ctx).Save(s).Error
}
