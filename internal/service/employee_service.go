package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vionup/internal/dto"
	"vionup/internal/infra"
	"vionup/internal/model"
	"vionup/internal/reconcile"
	"vionup/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// EmployeeService drives the employee reconciliation screen, including the
// "add all employees" bulk assignment.
type EmployeeService interface {
	Panels(ctx context.Context, filter dto.PanelFilter) (*dto.EmployeePanelsResponse, error)
	CreateMapping(ctx context.Context, req dto.CreateEmployeeMappingRequest) (*dto.SimpleMappingResponse, error)
	QuickCreate(ctx context.Context, req dto.QuickCreateEmployeeRequest) (*dto.SimpleMappingResponse, error)
	BulkAssign(ctx context.Context, req dto.BulkAssignEmployeesRequest) (*dto.BulkAssignResponse, error)
	DeleteMapping(ctx context.Context, id uuid.UUID) error
}

type employeeService struct {
	repo        repository.EmployeeRepository
	extRepo     repository.ExternalRepository
	companyRepo repository.CompanyRepository
	rdb         *redis.Client
	cacheTTL    time.Duration
}

func NewEmployeeService(repo repository.EmployeeRepository, extRepo repository.ExternalRepository, companyRepo repository.CompanyRepository, rdb *redis.Client, cacheTTL time.Duration) EmployeeService {
	return &employeeService{repo: repo, extRepo: extRepo, companyRepo: companyRepo, rdb: rdb, cacheTTL: cacheTTL}
}

func employeeDesc() reconcile.Descriptor[model.Employee, model.ExternalEmployee] {
	return reconcile.Descriptor[model.Employee, model.ExternalEmployee]{
		InternalID:     func(e model.Employee) uuid.UUID { return e.ID },
		InternalLabel:  func(e model.Employee) string { return e.Name },
		InternalSearch: func(e model.Employee) []string { return []string{e.Name, e.Role} },
		ExternalID:     func(e model.ExternalEmployee) string { return e.ExternalID },
		ExternalLabel:  func(e model.ExternalEmployee) string { return e.Name },
		ExternalSearch: func(e model.ExternalEmployee) []string { return []string{e.Name, e.ExternalID} },
		CompanyCode:    func(e model.ExternalEmployee) string { return e.ExternalCompanyID },
	}
}

func adaptEmployeeMappings(mappings []model.EmployeeMapping) []reconcile.Mapping {
	out := make([]reconcile.Mapping, 0, len(mappings))
	for _, m := range mappings {
		out = append(out, reconcile.Mapping{ID: m.ID, InternalID: m.EmployeeID, ExternalID: m.ExternalID})
	}
	return out
}

func (s *employeeService) loadEmployees(ctx context.Context, groupID uuid.UUID) ([]model.ExternalEmployee, error) {
	return infra.CachedFetch(ctx, s.rdb, externalCacheKey("employees", groupID), s.cacheTTL,
		func(ctx context.Context) ([]model.ExternalEmployee, error) {
			return s.extRepo.ListEmployees(ctx, groupID)
		})
}

func (s *employeeService) Panels(ctx context.Context, filter dto.PanelFilter) (*dto.EmployeePanelsResponse, error) {
	groupID, err := parseUUID("group_id", filter.GroupID)
	if err != nil {
		return nil, err
	}

	internals, err := s.repo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	externals, err := s.loadEmployees(ctx, groupID)
	if err != nil {
		return nil, err
	}
	mappings, err := s.repo.ListMappings(ctx, groupID)
	if err != nil {
		return nil, err
	}
	resolver, err := loadResolver(ctx, s.companyRepo, s.extRepo, groupID)
	if err != nil {
		return nil, err
	}

	view := reconcile.NewView(employeeDesc(), internals, externals, adaptEmployeeMappings(mappings))
	view.SetInternalSearch(filter.InternalSearch)
	view.SetExternalSearch(filter.ExternalSearch)
	view.SetInternalStatus(reconcile.ParseStatus(filter.InternalStatus))
	view.SetExternalStatus(reconcile.ParseStatus(filter.ExternalStatus))
	view.SetInternalPage(filter.InternalPage)
	view.SetExternalPage(filter.ExternalPage)

	names := employeeNameIndex(externals)

	internal := mapPage(view.InternalPage(), func(e model.Employee) dto.EmployeePanelItem {
		return dto.EmployeePanelItem{
			ID:       e.ID.String(),
			Name:     e.Name,
			Role:     e.Role,
			Linked:   len(view.MappingsFor(e.ID)) > 0,
			Mappings: simpleMappingResponses(view.MappingsFor(e.ID), names),
		}
	})
	external := mapPage(view.ExternalPage(), func(e model.ExternalEmployee) dto.ExternalEmployeePanelItem {
		return dto.ExternalEmployeePanelItem{
			ExternalID: e.ExternalID,
			Name:       e.Name,
			Linked:     view.IsExternalLinked(e.ExternalID),
			Company:    companyBadge(resolver, e.ExternalCompanyID),
		}
	})

	return &dto.EmployeePanelsResponse{Internal: internal, External: external}, nil
}

func (s *employeeService) CreateMapping(ctx context.Context, req dto.CreateEmployeeMappingRequest) (*dto.SimpleMappingResponse, error) {
	groupID, err := parseUUID("group_id", req.GroupID)
	if err != nil {
		return nil, err
	}
	employeeID, err := parseUUID("employee_id", req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByID(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.link(ctx, groupID, employeeID, req.ExternalID)
}

func (s *employeeService) QuickCreate(ctx context.Context, req dto.QuickCreateEmployeeRequest) (*dto.SimpleMappingResponse, error) {
	groupID, err := parseUUID("group_id", req.GroupID)
	if err != nil {
		return nil, err
	}

	e := &model.Employee{GroupID: groupID, Name: req.Name, Role: req.Role, Active: true}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return s.link(ctx, groupID, e.ID, req.ExternalID)
}

// BulkAssign quick-creates a canonical employee for every unlinked external
// record. Each item runs the same assignment path as a single gesture;
// per-item duplicate rejections are collected, never fatal.
func (s *employeeService) BulkAssign(ctx context.Context, req dto.BulkAssignEmployeesRequest) (*dto.BulkAssignResponse, error) {
	groupID, err := parseUUID("group_id", req.GroupID)
	if err != nil {
		return nil, err
	}

	externals, err := s.loadEmployees(ctx, groupID)
	if err != nil {
		return nil, err
	}
	mappings, err := s.repo.ListMappings(ctx, groupID)
	if err != nil {
		return nil, err
	}
	linked := make(map[string]bool, len(mappings))
	for _, m := range mappings {
		linked[m.ExternalID] = true
	}

	resp := &dto.BulkAssignResponse{}
	for _, ext := range externals {
		if linked[ext.ExternalID] {
			resp.Skipped++
			continue
		}
		_, err := s.QuickCreate(ctx, dto.QuickCreateEmployeeRequest{
			GroupID:    groupID.String(),
			Name:       ext.Name,
			ExternalID: ext.ExternalID,
		})
		if err != nil {
			if errors.Is(err, reconcile.ErrDuplicateMapping) || errors.Is(err, reconcile.ErrAlreadyLinked) {
				resp.Skipped++
				continue
			}
			resp.Errors = append(resp.Errors, fmt.Sprintf("%s: %v", ext.ExternalID, err))
			continue
		}
		resp.Created++
	}
	return resp, nil
}

func (s *employeeService) link(ctx context.Context, groupID, employeeID uuid.UUID, externalID string) (*dto.SimpleMappingResponse, error) {
	if _, err := s.repo.FindMappingByExternalID(ctx, groupID, externalID); err == nil {
		return nil, &reconcile.DuplicateMappingError{InternalID: employeeID, ExternalID: externalID}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	gesture := reconcile.NewAssignment(reconcile.ShapeSimple, nil)
	if err := gesture.Begin(externalID); err != nil {
		return nil, err
	}
	if err := gesture.Hover(employeeID); err != nil {
		return nil, err
	}
	commit, err := gesture.Drop()
	if err != nil {
		return nil, err
	}

	m := &model.EmployeeMapping{GroupID: groupID, EmployeeID: commit.InternalID, ExternalID: commit.ExternalID}
	if err := s.repo.CreateMapping(ctx, m); err != nil {
		return nil, translateDuplicate(err, commit.InternalID, commit.ExternalID)
	}

	name := m.ExternalID
	if externals, lerr := s.loadEmployees(ctx, groupID); lerr == nil {
		name = externalName(employeeNameIndex(externals), m.ExternalID)
	}
	return &dto.SimpleMappingResponse{
		ID:           m.ID.String(),
		InternalID:   m.EmployeeID.String(),
		ExternalID:   m.ExternalID,
		ExternalName: name,
	}, nil
}

func (s *employeeService) DeleteMapping(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindMappingByID(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteMapping(ctx, id)
}
