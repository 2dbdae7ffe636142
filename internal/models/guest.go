package models

import (
	"math"

	"gorm.io/gorm"
)

// AdminAccessLevel is the maximum access level; only administrators carry it.
const AdminAccessLevel int64 = math.MaxInt32

const (
	RoleGuest = "guest"
	RoleAdmin = "admin"
)

type Guest struct {
	gorm.Model
	Firstname string  `json:"firstname"`
	Lastname  string  `json:"lastname"`
	Email     string  `json:"email" gorm:"index"`
	Address   Address `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	LoginID   *uint   `json:"login_id,omitempty" gorm:"uniqueIndex"`
	Login     *Login  `json:"-" gorm:"foreignKey:LoginID"`
}

type Login struct {
	gorm.Model
	Username     string `json:"username" gorm:"uniqueIndex;size:150"`
	PasswordHash string `json:"-"`
	RoleID       uint   `json:"role_id"`
	Role         Role   `json:"role" gorm:"foreignKey:RoleID"`
}

type Role struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"uniqueIndex;size:64"`
	AccessLevel int64  `json:"access_level"`
}

func (r Role) IsAdmin() bool {
	return r.AccessLevel == AdminAccessLevel
}
