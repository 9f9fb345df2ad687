package service

import (
	"context"
	"errors"

	"vionup/internal/dto"
	"vionup/internal/model"
	"vionup/internal/reconcile"
	"vionup/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyService drives the company reconciliation screen. Its mapping
// records double as the middle hop of the resolution chain, so linking a
// company here is what makes badges appear on every other screen.
type CompanyService interface {
	Panels(ctx context.Context, filter dto.PanelFilter) (*dto.CompanyPanelsResponse, error)
	CreateMapping(ctx context.Context, req dto.CreateCompanyMappingRequest) (*dto.SimpleMappingResponse, error)
	DeleteMapping(ctx context.Context, id uuid.UUID) error
	ResolveOwningCompany(ctx context.Context, groupID uuid.UUID, code string) (*dto.CompanyResponse, error)
}

type companyService struct {
	repo    repository.CompanyRepository
	extRepo repository.ExternalRepository
}

func NewCompanyService(repo repository.CompanyRepository, extRepo repository.ExternalRepository) CompanyService {
	return &companyService{repo: repo, extRepo: extRepo}
}

func companyDesc() reconcile.Descriptor[model.Company, model.ExternalCompany] {
	return reconcile.Descriptor[model.Company, model.ExternalCompany]{
		InternalID:    func(c model.Company) uuid.UUID { return c.ID },
		InternalLabel: func(c model.Company) string { return c.Name },
		InternalSearch: func(c model.Company) []string {
			fields := []string{c.Name}
			if c.TradeName != nil {
				fields = append(fields, *c.TradeName)
			}
			return fields
		},
		ExternalID:    func(e model.ExternalCompany) string { return e.ID.String() },
		ExternalLabel: func(e model.ExternalCompany) string { return e.Name },
		ExternalSearch: func(e model.ExternalCompany) []string {
			return []string{e.Name, e.ExternalCode, e.ExternalID}
		},
	}
}

func adaptCompanyMappings(mappings []model.CompanyMapping) []reconcile.Mapping {
	out := make([]reconcile.Mapping, 0, len(mappings))
	for _, m := range mappings {
		out = append(out, reconcile.Mapping{ID: m.ID, InternalID: m.CompanyID, ExternalID: m.ExternalCompanyID.String()})
	}
	return out
}

func (s *companyService) Panels(ctx context.Context, filter dto.PanelFilter) (*dto.CompanyPanelsResponse, error) {
	groupID, err := parseUUID("group_id", filter.GroupID)
	if err != nil {
		return nil, err
	}

	internals, err := s.repo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	externals, err := s.extRepo.ListCompanies(ctx, groupID)
	if err != nil {
		return nil, err
	}
	mappings, err := s.repo.ListMappings(ctx, groupID)
	if err != nil {
		return nil, err
	}

	view := reconcile.NewView(companyDesc(), internals, externals, adaptCompanyMappings(mappings))
	view.SetInternalSearch(filter.InternalSearch)
	view.SetExternalSearch(filter.ExternalSearch)
	view.SetInternalStatus(reconcile.ParseStatus(filter.InternalStatus))
	view.SetExternalStatus(reconcile.ParseStatus(filter.ExternalStatus))
	view.SetInternalPage(filter.InternalPage)
	view.SetExternalPage(filter.ExternalPage)

	names := make(map[string]string, len(externals))
	for _, e := range externals {
		names[e.ID.String()] = e.Name
	}

	internal := mapPage(view.InternalPage(), func(c model.Company) dto.CompanyPanelItem {
		return dto.CompanyPanelItem{
			ID:       c.ID.String(),
			Name:     c.Name,
			Linked:   len(view.MappingsFor(c.ID)) > 0,
			Mappings: simpleMappingResponses(view.MappingsFor(c.ID), names),
		}
	})
	external := mapPage(view.ExternalPage(), func(e model.ExternalCompany) dto.ExternalCompanyPanelItem {
		return dto.ExternalCompanyPanelItem{
			ID:           e.ID.String(),
			ExternalID:   e.ExternalID,
			ExternalCode: e.ExternalCode,
			Name:         e.Name,
			Linked:       view.IsExternalLinked(e.ID.String()),
		}
	})

	return &dto.CompanyPanelsResponse{Internal: internal, External: external}, nil
}

func (s *companyService) CreateMapping(ctx context.Context, req dto.CreateCompanyMappingRequest) (*dto.SimpleMappingResponse, error) {
	groupID, err := parseUUID("group_id", req.GroupID)
	if err != nil {
		return nil, err
	}
	companyID, err := parseUUID("company_id", req.CompanyID)
	if err != nil {
		return nil, err
	}
	externalCompanyID, err := parseUUID("external_company_id", req.ExternalCompanyID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByID(ctx, companyID); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindMappingByExternalCompanyID(ctx, externalCompanyID); err == nil {
		return nil, &reconcile.DuplicateMappingError{InternalID: companyID, ExternalID: externalCompanyID.String()}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	gesture := reconcile.NewAssignment(reconcile.ShapeSimple, nil)
	if err := gesture.Begin(externalCompanyID.String()); err != nil {
		return nil, err
	}
	if err := gesture.Hover(companyID); err != nil {
		return nil, err
	}
	commit, err := gesture.Drop()
	if err != nil {
		return nil, err
	}

	m := &model.CompanyMapping{GroupID: groupID, CompanyID: commit.InternalID, ExternalCompanyID: externalCompanyID}
	if err := s.repo.CreateMapping(ctx, m); err != nil {
		return nil, translateDuplicate(err, commit.InternalID, commit.ExternalID)
	}

	name := m.ExternalCompanyID.String()
	if externals, lerr := s.extRepo.ListCompanies(ctx, groupID); lerr == nil {
		for _, e := range externals {
			if e.ID == m.ExternalCompanyID {
				name = e.Name
				break
			}
		}
	}
	return &dto.SimpleMappingResponse{
		ID:           m.ID.String(),
		InternalID:   m.CompanyID.String(),
		ExternalID:   m.ExternalCompanyID.String(),
		ExternalName: name,
	}, nil
}

func (s *companyService) DeleteMapping(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindMappingByID(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteMapping(ctx, id)
}

// ResolveOwningCompany exposes the resolution chain directly; a nil result is
// a 204-style absence, not an error.
func (s *companyService) ResolveOwningCompany(ctx context.Context, groupID uuid.UUID, code string) (*dto.CompanyResponse, error) {
	resolver, err := loadResolver(ctx, s.repo, s.extRepo, groupID)
	if err != nil {
		return nil, err
	}
	c := resolver.ResolveOwningCompany(code)
	if c == nil {
		return nil, nil
	}
	return &dto.CompanyResponse{ID: c.ID.String(), Name: c.Name, TradeName: c.TradeName}, nil
}
