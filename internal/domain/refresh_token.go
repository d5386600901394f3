package domain

import "time"

// RefreshToken is the persisted half of a token pair.
//
// Rows are never hard-deleted by the auth flow: logout and rotation flip
// Revoked, which keeps an audit trail and lets a replayed token be told apart
// from one that never existed. cmd/token_cleanup purges dead rows offline.
type RefreshToken struct {
	ID int64 `json:"id" gorm:"primaryKey"`

	UserID int64 `json:"user_id" gorm:"index;not null"`
	User   User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	Token string `json:"-" gorm:"size:512;uniqueIndex;not null"`

	Revoked   bool      `json:"revoked" gorm:"not null;default:false"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
