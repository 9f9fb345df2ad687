package service

import (
	"context"
	"errors"
	"fmt"

	"vionup/internal/dto"
	"vionup/internal/model"
	"vionup/internal/reconcile"
	"vionup/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cache key layout for per-group external record lists. Invalidated by the
// sync worker after a wholesale refresh.
func externalCacheKey(kind string, groupID uuid.UUID) string {
	return fmt.Sprintf("external:%s:%s", kind, groupID)
}

func parseUUID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, &reconcile.ValidationError{Field: field, Message: "uuid invalido"}
	}
	return id, nil
}

// translateDuplicate converts the DB's unique-index rejection into the
// reconciliation taxonomy. The index is the authoritative guard; client
// pre-checks only narrow the race window.
func translateDuplicate(err error, internalID uuid.UUID, externalID string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &reconcile.DuplicateMappingError{InternalID: internalID, ExternalID: externalID}
	}
	return err
}

// loadResolver assembles the company resolution chain inputs for a group.
func loadResolver(ctx context.Context, companyRepo repository.CompanyRepository, extRepo repository.ExternalRepository, groupID uuid.UUID) (*reconcile.Resolver, error) {
	externals, err := extRepo.ListCompanies(ctx, groupID)
	if err != nil {
		return nil, err
	}
	mappings, err := companyRepo.ListMappings(ctx, groupID)
	if err != nil {
		return nil, err
	}
	companies, err := companyRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return reconcile.NewResolver(externals, mappings, companies), nil
}

func companyBadge(r *reconcile.Resolver, code string) *dto.CompanyBadge {
	c := r.ResolveOwningCompany(code)
	if c == nil {
		return nil
	}
	return &dto.CompanyBadge{ID: c.ID.String(), Name: c.Name}
}

// mapPage converts a view-model page of models into a DTO page.
func mapPage[M, D any](p reconcile.Page[M], conv func(M) D) dto.Page[D] {
	items := make([]D, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, conv(it))
	}
	return dto.Page[D]{Items: items, Total: p.Total, TotalPages: p.TotalPages, Page: p.Page}
}

// externalName resolves a display label for a mapping's external side,
// falling back to the raw external id when the imported record is gone.
func externalName(names map[string]string, externalID string) string {
	if name, ok := names[externalID]; ok && name != "" {
		return name
	}
	return externalID
}

func productNameIndex(products []model.ExternalProduct) map[string]string {
	idx := make(map[string]string, len(products))
	for _, p := range products {
		idx[p.ExternalID] = p.Name
	}
	return idx
}

func employeeNameIndex(employees []model.ExternalEmployee) map[string]string {
	idx := make(map[string]string, len(employees))
	for _, e := range employees {
		idx[e.ExternalID] = e.Name
	}
	return idx
}
