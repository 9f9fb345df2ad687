package repository

import (
	"context"

	"vionup/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository defines data access for canonical products and their
// simple mappings (flat list shape).
type ProductRepository interface {
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Create(ctx context.Context, p *model.Product) error

	ListMappings(ctx context.Context, groupID uuid.UUID) ([]model.ProductMapping, error)
	FindMappingByID(ctx context.Context, id uuid.UUID) (*model.ProductMapping, error)
	FindMappingByExternalID(ctx context.Context, groupID uuid.UUID, externalID string) (*model.ProductMapping, error)
	CreateMapping(ctx context.Context, m *model.ProductMapping) error
	DeleteMapping(ctx context.Context, id uuid.UUID) error
}

type productRepository struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.Product, error) {
	var list []model.Product
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND active", groupID).
		Order("created_at asc").
		Find(&list).Error
	return list, err
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepository) ListMappings(ctx context.Context, groupID uuid.UUID) ([]model.ProductMapping, error) {
	var list []model.ProductMapping
	err := r.db.WithContext(ctx).Where("group_id = ?", groupID).Find(&list).Error
	return list, err
}

func (r *productRepository) FindMappingByID(ctx context.Context, id uuid.UUID) (*model.ProductMapping, error) {
	var m model.ProductMapping
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *productRepository) FindMappingByExternalID(ctx context.Context, groupID uuid.UUID, externalID string) (*model.ProductMapping, error) {
	var m model.ProductMapping
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND external_id = ?", groupID, externalID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *productRepository) CreateMapping(ctx context.Context, m *model.ProductMapping) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *productRepository) DeleteMapping(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ProductMapping{}, "id = ?", id).Error
}
