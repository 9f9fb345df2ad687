package model

import (
	"time"

	"github.com/google/uuid"
)

// External records are imported verbatim from the POS/ERP export and are
// immutable from this system's point of view. The sync worker replaces them
// wholesale per group; nothing here is ever edited in place.

// ExternalCompany is an imported company. ExternalID is the stable
// source-system key; ExternalCode is the short human-visible code (e.g. "01",
// "81") that external products and employees carry as their company reference.
type ExternalCompany struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GroupID      uuid.UUID `gorm:"type:uuid;index;not null"`
	ExternalID   string    `gorm:"index;not null"`
	ExternalCode string    `gorm:"index"`
	Name         string    `gorm:"not null"`
	ImportedAt   time.Time
}

func (ExternalCompany) TableName() string { return "external_companies" }

// ExternalProduct is an imported sale item. ExternalCompanyID is the short
// company CODE from the source, not an ExternalCompany UUID — resolving it to
// a canonical company takes the three-hop chain in reconcile.Resolver.
type ExternalProduct struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GroupID           uuid.UUID `gorm:"type:uuid;index;not null"`
	ExternalID        string    `gorm:"index;not null"`
	ExternalCode      string
	Name              string `gorm:"not null"`
	ProductGroup      string `gorm:"index"`
	ExternalCompanyID string `gorm:"index"`
	ImportedAt        time.Time
}

func (ExternalProduct) TableName() string { return "external_products" }

// ExternalEmployee is an imported employee, company-referenced by code like
// ExternalProduct.
type ExternalEmployee struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GroupID           uuid.UUID `gorm:"type:uuid;index;not null"`
	ExternalID        string    `gorm:"index;not null"`
	Name              string    `gorm:"not null"`
	ExternalCompanyID string    `gorm:"index"`
	ImportedAt        time.Time
}

func (ExternalEmployee) TableName() string { return "external_employees" }
