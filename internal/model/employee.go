package model

import (
	"time"

	"github.com/google/uuid"
)

// Employee is a canonical employee record owned by this system.
type Employee struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GroupID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Name      string    `gorm:"index;not null"`
	Role      string
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Employee) TableName() string { return "employees" }

// EmployeeMapping links a canonical employee to an external employee by the
// source-system key. Unique per (group, external_id).
type EmployeeMapping struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GroupID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_employee_mappings_group_ext,priority:1;not null"`
	EmployeeID uuid.UUID `gorm:"type:uuid;index;not null"`
	ExternalID string    `gorm:"uniqueIndex:idx_employee_mappings_group_ext,priority:2;not null"`
	CreatedAt  time.Time
}

func (EmployeeMapping) TableName() string { return "employee_mappings" }
