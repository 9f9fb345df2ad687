package repository

import (
	"context"

	"vionup/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExternalRepository defines data access for imported records. Reads feed the
// view models; the Replace* methods exist only for the sync worker, which
// refreshes a group's records wholesale inside one transaction.
type ExternalRepository interface {
	ListProducts(ctx context.Context, groupID uuid.UUID) ([]model.ExternalProduct, error)
	ListEmployees(ctx context.Context, groupID uuid.UUID) ([]model.ExternalEmployee, error)
	ListCompanies(ctx context.Context, groupID uuid.UUID) ([]model.ExternalCompany, error)

	ReplaceProducts(ctx context.Context, groupID uuid.UUID, records []model.ExternalProduct) error
	ReplaceEmployees(ctx context.Context, groupID uuid.UUID, records []model.ExternalEmployee) error
	ReplaceCompanies(ctx context.Context, groupID uuid.UUID, records []model.ExternalCompany) error
}

type externalRepository struct{ db *gorm.DB }

func NewExternalRepository(db *gorm.DB) ExternalRepository {
	return &externalRepository{db: db}
}

func (r *externalRepository) ListProducts(ctx context.Context, groupID uuid.UUID) ([]model.ExternalProduct, error) {
	var list []model.ExternalProduct
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("imported_at asc, external_id asc").
		Find(&list).Error
	return list, err
}

func (r *externalRepository) ListEmployees(ctx context.Context, groupID uuid.UUID) ([]model.ExternalEmployee, error) {
	var list []model.ExternalEmployee
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("imported_at asc, external_id asc").
		Find(&list).Error
	return list, err
}

func (r *externalRepository) ListCompanies(ctx context.Context, groupID uuid.UUID) ([]model.ExternalCompany, error) {
	var list []model.ExternalCompany
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("external_id asc").
		Find(&list).Error
	return list, err
}

// Wholesale replacement keeps external records immutable from the rest of the
// system: mappings are never touched here, orphans are tolerated downstream.

func (r *externalRepository) ReplaceProducts(ctx context.Context, groupID uuid.UUID, records []model.ExternalProduct) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.ExternalProduct{}, "group_id = ?", groupID).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
}

func (r *externalRepository) ReplaceEmployees(ctx context.Context, groupID uuid.UUID, records []model.ExternalEmployee) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.ExternalEmployee{}, "group_id = ?", groupID).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
}

func (r *externalRepository) ReplaceCompanies(ctx context.Context, groupID uuid.UUID, records []model.ExternalCompany) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.ExternalCompany{}, "group_id = ?", groupID).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
}
