package repository

import (
	"context"

	"vionup/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyRepository defines data access for canonical companies and company
// mappings. Company mappings double as the middle hop of the resolution
// chain and as the simple-mapping records of the company screen.
type CompanyRepository interface {
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.Company, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Company, error)

	ListMappings(ctx context.Context, groupID uuid.UUID) ([]model.CompanyMapping, error)
	FindMappingByID(ctx context.Context, id uuid.UUID) (*model.CompanyMapping, error)
	FindMappingByExternalCompanyID(ctx context.Context, externalCompanyID uuid.UUID) (*model.CompanyMapping, error)
	CreateMapping(ctx context.Context, m *model.CompanyMapping) error
	DeleteMapping(ctx context.Context, id uuid.UUID) error
}

type companyRepository struct{ db *gorm.DB }

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.Company, error) {
	var list []model.Company
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND active", groupID).
		Order("name asc").
		Find(&list).Error
	return list, err
}

func (r *companyRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	var c model.Company
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *companyRepository) ListMappings(ctx context.Context, groupID uuid.UUID) ([]model.CompanyMapping, error) {
	var list []model.CompanyMapping
	err := r.db.WithContext(ctx).Where("group_id = ?", groupID).Find(&list).Error
	return list, err
}

func (r *companyRepository) FindMappingByID(ctx context.Context, id uuid.UUID) (*model.CompanyMapping, error) {
	var m model.CompanyMapping
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *companyRepository) FindMappingByExternalCompanyID(ctx context.Context, externalCompanyID uuid.UUID) (*model.CompanyMapping, error) {
	var m model.CompanyMapping
	err := r.db.WithContext(ctx).
		Where("external_company_id = ?", externalCompanyID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *companyRepository) CreateMapping(ctx context.Context, m *model.CompanyMapping) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *companyRepository) DeleteMapping(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CompanyMapping{}, "id = ?", id).Error
}
