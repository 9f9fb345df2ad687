package model

import (
	"time"

	"github.com/google/uuid"
)

// Product is a canonical sale product owned by this system.
type Product struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GroupID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Name      string    `gorm:"index;not null"`
	Category  string
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Product) TableName() string { return "products" }

// ProductMapping links a canonical product to an external product by the
// source-system key. At most one mapping per external_id within a group —
// the unique index is the authoritative guard, the client pre-check is
// advisory only.
type ProductMapping struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GroupID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_product_mappings_group_ext,priority:1;not null"`
	ProductID  uuid.UUID `gorm:"type:uuid;index;not null"`
	ExternalID string    `gorm:"uniqueIndex:idx_product_mappings_group_ext,priority:2;not null"`
	CreatedAt  time.Time
}

func (ProductMapping) TableName() string { return "product_mappings" }
