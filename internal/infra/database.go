package infra

import (
	"fmt"

	"vionup/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs AutoMigrate
// to create / update all tables. TranslateError is required: the services
// detect gorm.ErrDuplicatedKey to turn unique-index violations into the
// duplicate-mapping taxonomy.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return db, nil
}

// RunMigrations applies the schema. Also used by integration tests against a
// throwaway container.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.CompanyGroup{},
		&model.Company{},
		&model.CompanyMapping{},
		&model.ExternalCompany{},
		&model.ExternalProduct{},
		&model.ExternalEmployee{},
		&model.RawMaterial{},
		&model.RawMaterialMapping{},
		&model.Product{},
		&model.ProductMapping{},
		&model.Employee{},
		&model.EmployeeMapping{},
		&model.User{},
	)
}
