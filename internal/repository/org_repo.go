package repository

import (
	"context"
	"errors"

	"taskboard/internal/domain"

	"gorm.io/gorm"
)

type OrgRepository struct {
	db *gorm.DB
}

func NewOrgRepository(db *gorm.DB) *OrgRepository {
	return &OrgRepository{db: db}
}

// CreateWithAdmin creates the organization and its founding admin membership
// in one transaction.
func (r *OrgRepository) CreateWithAdmin(ctx context.Context, org *domain.Organization, userID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return err
		}
		return tx.Create(&domain.Membership{
			UserID:         userID,
			OrganizationID: org.ID,
			Role:           domain.RoleAdmin,
		}).Error
	})
}

func (r *OrgRepository) GetByID(ctx context.Context, id int64) (*domain.Organization, error) {
	var org domain.Organization
	if err := r.db.WithContext(ctx).First(&org, id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *OrgRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Organization{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}

func (r *OrgRepository) GetMembership(ctx context.Context, userID, orgID int64) (*domain.Membership, error) {
	var m domain.Membership
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND organization_id = ?", userID, orgID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *OrgRepository) IsMember(ctx context.Context, userID, orgID int64) (bool, error) {
	_, err := r.GetMembership(ctx, userID, orgID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *OrgRepository) ListMembers(ctx context.Context, orgID int64) ([]domain.Membership, error) {
	var members []domain.Membership
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("organization_id = ?", orgID).
		Find(&members).Error
	return members, err
}

// MemberIDs returns the user IDs of all members, used for event fanout.
func (r *OrgRepository) MemberIDs(ctx context.Context, orgID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&domain.Membership{}).
		Where("organization_id = ?", orgID).
		Pluck("user_id", &ids).Error
	return ids, err
}
