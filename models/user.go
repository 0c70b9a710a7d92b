package models

import "gorm.io/gorm"

const (
	PrivilegeAdmin = "admin"
	PrivilegeUser  = "user"

	StatusAvailable = "available"
	StatusOnSite    = "on-site"
	StatusInMeeting = "in-meeting"
	StatusOffline   = "offline"
)

type User struct {
	ID              string  `gorm:"primaryKey;size:36" json:"id"`
	Name            string  `gorm:"not null" json:"name"`
	Email           string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash    string  `gorm:"column:password_hash" json:"-"`
	Privilege       *string `json:"privilege,omitempty"`
	PushToken       *string `json:"pushToken,omitempty"`
	Image           *string `json:"image,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Status          *string `json:"status,omitempty"`
	LastActive      *int64  `json:"lastActive,omitempty"`
	CurrentLocation *string `json:"currentLocation,omitempty"`
	CreatedAt       int64   `gorm:"autoCreateTime:milli" json:"createdAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	assignID(&u.ID)
	return nil
}

// IsValidStatus reports whether s is one of the presence states a user can set.
func IsValidStatus(s string) bool {
	switch s {
	case StatusAvailable, StatusOnSite, StatusInMeeting, StatusOffline:
		return true
	}
	return false
}
