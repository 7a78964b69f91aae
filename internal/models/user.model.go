package models

import (
	"strings"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleLandlord Role = "landlord"
)

type User struct {
	BaseModel
	FirstName string  `gorm:"type:text;not null"                            json:"firstName"`
	LastName  string  `gorm:"type:text;not null"                            json:"lastName"`
	Email     string  `gorm:"type:text;not null;uniqueIndex"                json:"email"`
	Phone     *string `gorm:"type:text"                                     json:"phone,omitempty"`
	Password  string  `gorm:"type:text;not null"                            json:"-"`
	Role      Role    `gorm:"type:varchar(20);not null;default:'landlord';index" json:"role"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Owns reports whether the user is the owner of the property.
func (u *User) Owns(property *Property) bool {
	return u != nil && property != nil && property.UserID == u.ID
}
