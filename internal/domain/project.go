package domain

import "time"

type Project struct {
	ID             int64  `json:"id" gorm:"primaryKey"`
	OrganizationID int64  `json:"organizationId" gorm:"index;not null"`
	Title          string `json:"title" gorm:"not null"`
	Description    string `json:"description,omitempty"`
	Color          string `json:"color" gorm:"size:16;default:'#3B82F6'"`

	Organization Organization `json:"-" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
