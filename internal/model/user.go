package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a dashboard operator account. Auth is a collaborator surface here;
// the reconciliation core never touches it.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GroupID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"not null;default:'operador'"` // operador | gestor | administrador
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string { return "users" }
