package models

import (
	"fmt"
	"time"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// ParseRole converts a stored role name into a Role.
func ParseRole(name string) (Role, error) {
	switch Role(name) {
	case RoleAdmin, RoleDoctor, RolePatient:
		return Role(name), nil
	default:
		return "", fmt.Errorf("unknown role %q", name)
	}
}

// DashboardPath returns the landing page of the role after login.
func (r Role) DashboardPath() string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleDoctor:
		return "/doctor/dashboard"
	case RolePatient:
		return "/patient/dashboard"
	default:
		return "/login"
	}
}

func (r Role) String() string {
	return string(r)
}

// User represents an account of any role
type User struct {
	ID           int64         `gorm:"primaryKey;column:id" json:"id"`
	Username     string        `gorm:"size:80;not null;uniqueIndex;column:username" json:"username"`
	Email        string        `gorm:"size:120;not null;uniqueIndex;column:email" json:"email"`
	Password     string        `gorm:"size:255;not null;column:password" json:"-"`
	Role         Role          `gorm:"size:20;not null;index;column:role;check:role IN ('admin', 'doctor', 'patient')" json:"role"`
	CreatedAt    time.Time     `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	DoctorDetail *DoctorDetail `gorm:"foreignKey:UserID;references:ID" json:"doctor_detail,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// DoctorDetail holds the professional profile of a doctor account
type DoctorDetail struct {
	ID             int64  `gorm:"primaryKey;column:id" json:"id"`
	UserID         int64  `gorm:"not null;uniqueIndex;column:user_id" json:"user_id"`
	Department     string `gorm:"size:100;not null;column:department" json:"department"`
	Specialization string `gorm:"size:100;column:specialization" json:"specialization"`
	Experience     int    `gorm:"column:experience" json:"experience"`
}

func (DoctorDetail) TableName() string {
	return "doctor_details"
}

// Principal is the identity carried by an authenticated session.
type Principal struct {
	UserID   int64
	Role     Role
	Username string
}

// Is reports whether the principal holds the given role.
func (p Principal) Is(role Role) bool {
	return p.Role == role
}
