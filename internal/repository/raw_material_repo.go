package repository

import (
	"context"

	"vionup/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RawMaterialRepository defines the data access contract for raw materials
// and their weighted mappings. Mappings are embedded on the material rows
// (nested API shape) rather than exposed as a flat list.
type RawMaterialRepository interface {
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.RawMaterial, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.RawMaterial, error)

	CreateMapping(ctx context.Context, m *model.RawMaterialMapping) error
	FindMappingByID(ctx context.Context, id uuid.UUID) (*model.RawMaterialMapping, error)
	FindMappingByPair(ctx context.Context, rawMaterialID uuid.UUID, externalProductID string) (*model.RawMaterialMapping, error)
	UpdateMappingQuantity(ctx context.Context, id uuid.UUID, quantity decimal.Decimal) (*model.RawMaterialMapping, error)
	DeleteMapping(ctx context.Context, id uuid.UUID) error
}

type rawMaterialRepository struct{ db *gorm.DB }

func NewRawMaterialRepository(db *gorm.DB) RawMaterialRepository {
	return &rawMaterialRepository{db: db}
}

func (r *rawMaterialRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.RawMaterial, error) {
	var list []model.RawMaterial
	err := r.db.WithContext(ctx).
		Preload("Mappings").
		Where("group_id = ? AND active", groupID).
		Order("created_at asc").
		Find(&list).Error
	return list, err
}

func (r *rawMaterialRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.RawMaterial, error) {
	var m model.RawMaterial
	err := r.db.WithContext(ctx).Preload("Mappings").First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *rawMaterialRepository) CreateMapping(ctx context.Context, m *model.RawMaterialMapping) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *rawMaterialRepository) FindMappingByID(ctx context.Context, id uuid.UUID) (*model.RawMaterialMapping, error) {
	var m model.RawMaterialMapping
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *rawMaterialRepository) FindMappingByPair(ctx context.Context, rawMaterialID uuid.UUID, externalProductID string) (*model.RawMaterialMapping, error) {
	var m model.RawMaterialMapping
	err := r.db.WithContext(ctx).
		Where("raw_material_id = ? AND external_product_id = ?", rawMaterialID, externalProductID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *rawMaterialRepository) UpdateMappingQuantity(ctx context.Context, id uuid.UUID, quantity decimal.Decimal) (*model.RawMaterialMapping, error) {
	var m model.RawMaterialMapping
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	m.QuantityPerUnit = quantity
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *rawMaterialRepository) DeleteMapping(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.RawMaterialMapping{}, "id = ?", id).Error
}
