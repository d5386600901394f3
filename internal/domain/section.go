package domain

import "time"

type Section struct {
	ID        int64  `json:"id" gorm:"primaryKey"`
	ProjectID int64  `json:"projectId" gorm:"index;not null"`
	Title     string `json:"title" gorm:"not null"`
	Position  int    `json:"position" gorm:"not null;default:0"`

	Project Project `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"createdAt"`
}
