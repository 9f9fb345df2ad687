package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Raw material levels. Only leaf materials participate in reconciliation;
// level-1 records are grouping nodes.
const (
	RawMaterialLevelGroup = 1
	RawMaterialLevelLeaf  = 2
)

// RawMaterial is a canonical ingredient record. A leaf material (level 2)
// optionally belongs to a level-1 group via ParentID; the reference is
// informational, never exclusive ownership.
type RawMaterial struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GroupID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Name      string    `gorm:"index;not null"`
	Unit      string    `gorm:"not null;default:'kg'"`
	Level     int       `gorm:"not null;default:2"`
	ParentID  *uuid.UUID `gorm:"type:uuid;index"`
	Active    bool       `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Weighted mappings ride along with the material (nested API shape).
	Mappings []RawMaterialMapping `gorm:"foreignKey:RawMaterialID"`
}

func (RawMaterial) TableName() string { return "raw_materials" }

// RawMaterialMapping is the weighted (bill-of-materials style) link between a
// raw material and an external sale product: QuantityPerUnit units of the
// material are consumed per one unit of the external product sold.
// The (raw_material_id, external_product_id) pair is unique; an external
// product carrying mappings to two materials is legal at the storage level.
type RawMaterialMapping struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RawMaterialID     uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_rm_mapping_pair,priority:1;not null"`
	ExternalProductID string          `gorm:"uniqueIndex:idx_rm_mapping_pair,priority:2;not null"`
	QuantityPerUnit   decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (RawMaterialMapping) TableName() string { return "raw_material_mappings" }
