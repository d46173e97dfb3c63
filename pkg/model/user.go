package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleReader Role = "reader"
	RoleAdmin  Role = "admin"
)

func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleReader, RoleAdmin:
		return Role(value), true
	default:
		return "", false
	}
}

type User struct {
	gorm.Model
	UUID         uuid.UUID `gorm:"type:uuid"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Name         string
	Role         Role `gorm:"type:varchar(16);default:reader"`
}
