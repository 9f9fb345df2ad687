package model

import (
	"time"

	"github.com/google/uuid"
)

// CompanyGroup is the tenancy root: every canonical and imported record is
// scoped to exactly one group (a multi-company restaurant group).
type CompanyGroup struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CompanyGroup) TableName() string { return "company_groups" }

// Company is a canonical company record owned by this system.
type Company struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GroupID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Name      string    `gorm:"index;not null"`
	TradeName *string
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Company) TableName() string { return "companies" }

// CompanyMapping links an ExternalCompany row (by its own UUID, not the
// source code) to a canonical Company. It is the middle hop of the company
// resolution chain and also the "simple mapping" record of the company
// reconciliation screen.
type CompanyMapping struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GroupID           uuid.UUID `gorm:"type:uuid;index;not null"`
	ExternalCompanyID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	CompanyID         uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt         time.Time
}

func (CompanyMapping) TableName() string { return "company_mappings" }
