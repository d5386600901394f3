package domain

import "time"

type MemberRole string

const (
	RoleAdmin  MemberRole = "admin"
	RoleMember MemberRole = "member"
)

type Organization struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;not null"`

	CreatedAt time.Time `json:"createdAt"`
}

// Membership grants a user access to an organization's resources. Every
// authorization check on orgs, projects, sections and tasks reduces to a
// lookup of this row.
type Membership struct {
	ID             int64      `json:"id" gorm:"primaryKey"`
	UserID         int64      `json:"userId" gorm:"uniqueIndex:idx_member_user_org;not null"`
	OrganizationID int64      `json:"organizationId" gorm:"uniqueIndex:idx_member_user_org;not null"`
	Role           MemberRole `json:"role" gorm:"size:16;not null"`

	User         User         `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Organization Organization `json:"-" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"createdAt"`
}
