package repository

import (
	"context"

	"vionup/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmployeeRepository defines data access for canonical employees and their
// simple mappings.
type EmployeeRepository interface {
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.Employee, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Employee, error)
	Create(ctx context.Context, e *model.Employee) error

	ListMappings(ctx context.Context, groupID uuid.UUID) ([]model.EmployeeMapping, error)
	FindMappingByID(ctx context.Context, id uuid.UUID) (*model.EmployeeMapping, error)
	FindMappingByExternalID(ctx context.Context, groupID uuid.UUID, externalID string) (*model.EmployeeMapping, error)
	CreateMapping(ctx context.Context, m *model.EmployeeMapping) error
	DeleteMapping(ctx context.Context, id uuid.UUID) error
}

type employeeRepository struct{ db *gorm.DB }

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.Employee, error) {
	var list []model.Employee
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND active", groupID).
		Order("created_at asc").
		Find(&list).Error
	return list, err
}

func (r *employeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	var e model.Employee
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *employeeRepository) Create(ctx context.Context, e *model.Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *employeeRepository) ListMappings(ctx context.Context, groupID uuid.UUID) ([]model.EmployeeMapping, error) {
	var list []model.EmployeeMapping
	err := r.db.WithContext(ctx).Where("group_id = ?", groupID).Find(&list).Error
	return list, err
}

func (r *employeeRepository) FindMappingByID(ctx context.Context, id uuid.UUID) (*model.EmployeeMapping, error) {
	var m model.EmployeeMapping
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *employeeRepository) FindMappingByExternalID(ctx context.Context, groupID uuid.UUID, externalID string) (*model.EmployeeMapping, error) {
	var m model.EmployeeMapping
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND external_id = ?", groupID, externalID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *employeeRepository) CreateMapping(ctx context.Context, m *model.EmployeeMapping) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *employeeRepository) DeleteMapping(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.EmployeeMapping{}, "id = ?", id).Error
}
