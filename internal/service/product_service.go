package service

import (
	"context"
	"errors"
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

// ProductService drives the product reconciliation screen (simple 1:1 links)
// and the quick-create promotion of external-only products.
type ProductService interface {
	Panels(ctx context.Context, filter dto.PanelFilter) (*dto.ProductPanelsResponse, error)
	CreateMapping(ctx context.Context, req dto.CreateProductMappingRequest) (*dto.SimpleMappingResponse, error)
	QuickCreate(ctx context.Context, req dto.QuickCreateProductRequest) (*dto.SimpleMappingResponse, error)
	DeleteMapping(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo        repository.ProductRepository
	extRepo     repository.ExternalRepository
	companyRepo repository.CompanyRepository
	rdb         *redis.Client
	cacheTTL    time.Duration
}

func NewProductService(repo repository.ProductRepository, extRepo repository.ExternalRepository, companyRepo repository.CompanyRepository, rdb *redis.Client, cacheTTL time.Duration) ProductService {
	return &productService{repo: repo, extRepo: extRepo, companyRepo: companyRepo, rdb: rdb, cacheTTL: cacheTTL}
}

func productDesc() reconcile.Descriptor[model.Product, model.ExternalProduct] {
	return reconcile.Descriptor[model.Product, model.ExternalProduct]{
		InternalID:     func(p model.Product) uuid.UUID { return p.ID },
		InternalLabel:  func(p model.Product) string { return p.Name },
		InternalSearch: func(p model.Product) []string { return []string{p.Name, p.Category} },
		ExternalID:     func(p model.ExternalProduct) string { return p.ExternalID },
		ExternalLabel:  func(p model.ExternalProduct) string { return p.Name },
		ExternalSearch: func(p model.ExternalProduct) []string {
			return []string{p.Name, p.ExternalCode, p.ExternalID}
		},
		CompanyCode: func(p model.ExternalProduct) string { return p.ExternalCompanyID },
	}
}

func adaptProductMappings(mappings []model.ProductMapping) []reconcile.Mapping {
	out := make([]reconcile.Mapping, 0, len(mappings))
	for _, m := range mappings {
		out = append(out, reconcile.Mapping{ID: m.ID, InternalID: m.ProductID, ExternalID: m.ExternalID})
	}
	return out
}

func (s *productService) loadProducts(ctx context.Context, groupID uuid.UUID) ([]model.ExternalProduct, error) {
	return infra.CachedFetch(ctx, s.rdb, externalCacheKey("products", groupID), s.cacheTTL,
		func(ctx context.Context) ([]model.ExternalProduct, error) {
			return s.extRepo.ListProducts(ctx, groupID)
		})
}

func (s *productService) Panels(ctx context.Context, filter dto.PanelFilter) (*dto.ProductPanelsResponse, error) {
	groupID, err := parseUUID("group_id", filter.GroupID)
	if err != nil {
		return nil, err
	}

	internals, err := s.repo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	externals, err := s.loadProducts(ctx, groupID)
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

	view := reconcile.NewView(productDesc(), internals, externals, adaptProductMappings(mappings))
	view.SetInternalSearch(filter.InternalSearch)
	view.SetExternalSearch(filter.ExternalSearch)
	view.SetInternalStatus(reconcile.ParseStatus(filter.InternalStatus))
	view.SetExternalStatus(reconcile.ParseStatus(filter.ExternalStatus))
	view.SetInternalPage(filter.InternalPage)
	view.SetExternalPage(filter.ExternalPage)

	names := productNameIndex(externals)

	internal := mapPage(view.InternalPage(), func(p model.Product) dto.ProductPanelItem {
		return dto.ProductPanelItem{
			ID:       p.ID.String(),
			Name:     p.Name,
			Category: p.Category,
			Linked:   len(view.MappingsFor(p.ID)) > 0,
			Mappings: simpleMappingResponses(view.MappingsFor(p.ID), names),
		}
	})
	external := mapPage(view.ExternalPage(), func(p model.ExternalProduct) dto.ExternalProductPanelItem {
		return dto.ExternalProductPanelItem{
			ExternalID:   p.ExternalID,
			ExternalCode: p.ExternalCode,
			Name:         p.Name,
			ProductGroup: p.ProductGroup,
			Linked:       view.IsExternalLinked(p.ExternalID),
			Company:      companyBadge(resolver, p.ExternalCompanyID),
		}
	})

	return &dto.ProductPanelsResponse{Internal: internal, External: external}, nil
}

func (s *productService) CreateMapping(ctx context.Context, req dto.CreateProductMappingRequest) (*dto.SimpleMappingResponse, error) {
	groupID, err := parseUUID("group_id", req.GroupID)
	if err != nil {
		return nil, err
	}
	productID, err := parseUUID("product_id", req.ProductID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.link(ctx, groupID, productID, req.ExternalID)
}

// QuickCreate promotes the external record into a canonical product and links
// it. The two calls are sequential, as in the dashboard flow: a mapping
// failure leaves the created product behind for a manual retry.
func (s *productService) QuickCreate(ctx context.Context, req dto.QuickCreateProductRequest) (*dto.SimpleMappingResponse, error) {
	groupID, err := parseUUID("group_id", req.GroupID)
	if err != nil {
		return nil, err
	}

	p := &model.Product{GroupID: groupID, Name: req.Name, Category: req.Category, Active: true}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.link(ctx, groupID, p.ID, req.ExternalID)
}

// link runs the shared assignment path: advisory pre-check through the
// protocol, then create with the unique index as the authoritative guard.
func (s *productService) link(ctx context.Context, groupID, productID uuid.UUID, externalID string) (*dto.SimpleMappingResponse, error) {
	if _, err := s.repo.FindMappingByExternalID(ctx, groupID, externalID); err == nil {
		return nil, &reconcile.DuplicateMappingError{InternalID: productID, ExternalID: externalID}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	gesture := reconcile.NewAssignment(reconcile.ShapeSimple, nil)
	if err := gesture.Begin(externalID); err != nil {
		return nil, err
	}
	if err := gesture.Hover(productID); err != nil {
		return nil, err
	}
	commit, err := gesture.Drop()
	if err != nil {
		return nil, err
	}

	m := &model.ProductMapping{GroupID: groupID, ProductID: commit.InternalID, ExternalID: commit.ExternalID}
	if err := s.repo.CreateMapping(ctx, m); err != nil {
		return nil, translateDuplicate(err, commit.InternalID, commit.ExternalID)
	}

	name := m.ExternalID
	if externals, lerr := s.loadProducts(ctx, groupID); lerr == nil {
		name = externalName(productNameIndex(externals), m.ExternalID)
	}
	return &dto.SimpleMappingResponse{
		ID:           m.ID.String(),
		InternalID:   m.ProductID.String(),
		ExternalID:   m.ExternalID,
		ExternalName: name,
	}, nil
}

func (s *productService) DeleteMapping(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindMappingByID(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteMapping(ctx, id)
}

func simpleMappingResponses(mappings []reconcile.Mapping, names map[string]string) []dto.SimpleMappingResponse {
	out := make([]dto.SimpleMappingResponse, 0, len(mappings))
	for _, m := range mappings {
		out = append(out, dto.SimpleMappingResponse{
			ID:           m.ID.String(),
			InternalID:   m.InternalID.String(),
			ExternalID:   m.ExternalID,
			ExternalName: externalName(names, m.ExternalID),
		})
	}
	return out
}
