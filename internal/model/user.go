package model

import "time"

// Roles carried in auth tokens.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
	RoleGuest  = "guest"
)

// User represents a site account. The password hash is never
// serialized to JSON.
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"uniqueIndex;size:255;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"column:password;size:255;not null"`
	Role         string     `json:"role" gorm:"size:50;not null;default:'member';index"`
	MemberID     *uint      `json:"memberId" gorm:"index"`
	Member       *Member    `json:"-" gorm:"foreignKey:MemberID;constraint:OnDelete:SET NULL"`
	IsActive     bool       `json:"isActive" gorm:"default:true"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// ValidRole reports whether role is one of the known access levels.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleMember, RoleGuest:
		return true
	}
	return false
}
