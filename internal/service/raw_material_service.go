package service

import (
	"context"
	"errors"
	"strings"
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

// External product categories from the POS export. Sale items are the only
// candidates for raw-material reconciliation; subproducts never appear.
const (
	categorySubproduct = "subproduto"
	categorySale       = "venda"
)

func saleEligible(p model.ExternalProduct) bool {
	g := strings.ToLower(p.ProductGroup)
	return g != categorySubproduct && strings.Contains(g, categorySale)
}

// RawMaterialService drives the weighted (bill-of-materials) reconciliation
// screen: matching panels, quantity-bearing mapping mutations.
type RawMaterialService interface {
	Panels(ctx context.Context, filter dto.PanelFilter) (*dto.RawMaterialPanelsResponse, error)
	CreateMapping(ctx context.Context, req dto.CreateWeightedMappingRequest) (*dto.WeightedMappingResponse, error)
	UpdateMappingQuantity(ctx context.Context, id uuid.UUID, req dto.UpdateWeightedMappingRequest) (*dto.WeightedMappingResponse, error)
	DeleteMapping(ctx context.Context, id uuid.UUID) error
}

type rawMaterialService struct {
	repo        repository.RawMaterialRepository
	extRepo     repository.ExternalRepository
	companyRepo repository.CompanyRepository
	rdb         *redis.Client
	cacheTTL    time.Duration
}

func NewRawMaterialService(repo repository.RawMaterialRepository, extRepo repository.ExternalRepository, companyRepo repository.CompanyRepository, rdb *redis.Client, cacheTTL time.Duration) RawMaterialService {
	return &rawMaterialService{repo: repo, extRepo: extRepo, companyRepo: companyRepo, rdb: rdb, cacheTTL: cacheTTL}
}

func rawMaterialDesc() reconcile.Descriptor[model.RawMaterial, model.ExternalProduct] {
	return reconcile.Descriptor[model.RawMaterial, model.ExternalProduct]{
		InternalID:     func(m model.RawMaterial) uuid.UUID { return m.ID },
		InternalLabel:  func(m model.RawMaterial) string { return m.Name },
		InternalSearch: func(m model.RawMaterial) []string { return []string{m.Name} },
		InternalOK:     func(m model.RawMaterial) bool { return m.Level == model.RawMaterialLevelLeaf },
		ExternalID:     func(p model.ExternalProduct) string { return p.ExternalID },
		ExternalLabel:  func(p model.ExternalProduct) string { return p.Name },
		ExternalSearch: func(p model.ExternalProduct) []string {
			return []string{p.Name, p.ExternalCode, p.ExternalID}
		},
		ExternalOK:  saleEligible,
		CompanyCode: func(p model.ExternalProduct) string { return p.ExternalCompanyID },
		FacetGroup:  func(p model.ExternalProduct) string { return p.ProductGroup },
	}
}

// flattenWeighted adapts the nested per-material mapping collections into the
// shape-neutral form the view model consumes.
func flattenWeighted(materials []model.RawMaterial) []reconcile.Mapping {
	var out []reconcile.Mapping
	for _, m := range materials {
		for _, w := range m.Mappings {
			q := w.QuantityPerUnit
			out = append(out, reconcile.Mapping{
				ID:         w.ID,
				InternalID: w.RawMaterialID,
				ExternalID: w.ExternalProductID,
				Quantity:   &q,
			})
		}
	}
	return out
}

func (s *rawMaterialService) loadProducts(ctx context.Context, groupID uuid.UUID) ([]model.ExternalProduct, error) {
	return infra.CachedFetch(ctx, s.rdb, externalCacheKey("products", groupID), s.cacheTTL,
		func(ctx context.Context) ([]model.ExternalProduct, error) {
			return s.extRepo.ListProducts(ctx, groupID)
		})
}

func (s *rawMaterialService) Panels(ctx context.Context, filter dto.PanelFilter) (*dto.RawMaterialPanelsResponse, error) {
	groupID, err := parseUUID("group_id", filter.GroupID)
	if err != nil {
		return nil, err
	}

	materials, err := s.repo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	products, err := s.loadProducts(ctx, groupID)
	if err != nil {
		return nil, err
	}
	resolver, err := loadResolver(ctx, s.companyRepo, s.extRepo, groupID)
	if err != nil {
		return nil, err
	}

	view := reconcile.NewView(rawMaterialDesc(), materials, products, flattenWeighted(materials))
	view.SetInternalSearch(filter.InternalSearch)
	view.SetExternalSearch(filter.ExternalSearch)
	view.SetInternalStatus(reconcile.ParseStatus(filter.InternalStatus))
	view.SetExternalStatus(reconcile.ParseStatus(filter.ExternalStatus))
	view.SetGroupFacet(filter.ProductGroups)
	view.SetCompanyFacet(filter.CompanyCodes)
	view.SetInternalPage(filter.InternalPage)
	view.SetExternalPage(filter.ExternalPage)

	names := productNameIndex(products)

	internal := mapPage(view.InternalPage(), func(m model.RawMaterial) dto.RawMaterialPanelItem {
		mappings := view.MappingsFor(m.ID)
		item := dto.RawMaterialPanelItem{
			ID:       m.ID.String(),
			Name:     m.Name,
			Unit:     m.Unit,
			Linked:   len(mappings) > 0,
			Mappings: make([]dto.WeightedMappingResponse, 0, len(mappings)),
		}
		for _, w := range mappings {
			item.Mappings = append(item.Mappings, dto.WeightedMappingResponse{
				ID:                  w.ID.String(),
				RawMaterialID:       w.InternalID.String(),
				ExternalProductID:   w.ExternalID,
				ExternalProductName: externalName(names, w.ExternalID),
				QuantityPerUnit:     *w.Quantity,
			})
		}
		return item
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

	return &dto.RawMaterialPanelsResponse{Internal: internal, External: external}, nil
}

func (s *rawMaterialService) CreateMapping(ctx context.Context, req dto.CreateWeightedMappingRequest) (*dto.WeightedMappingResponse, error) {
	rmID, err := parseUUID("raw_material_id", req.RawMaterialID)
	if err != nil {
		return nil, err
	}

	material, err := s.repo.FindByID(ctx, rmID)
	if err != nil {
		return nil, err
	}
	if material.Level != model.RawMaterialLevelLeaf {
		return nil, &reconcile.ValidationError{Field: "raw_material_id", Message: "apenas insumos de nivel 2 podem ser vinculados"}
	}

	// Same-pair retries are duplicates, reported as such before any gesture
	// state is considered.
	if _, err := s.repo.FindMappingByPair(ctx, rmID, req.ExternalProductID); err == nil {
		return nil, &reconcile.DuplicateMappingError{InternalID: rmID, ExternalID: req.ExternalProductID}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// The drop pre-check runs against the group's current mapping set; it is
	// advisory, the pair unique index has the final word.
	materials, err := s.repo.ListByGroup(ctx, material.GroupID)
	if err != nil {
		return nil, err
	}
	existing := reconcile.NewView(rawMaterialDesc(), nil, nil, flattenWeighted(materials))

	gesture := reconcile.NewAssignment(reconcile.ShapeWeighted, existing.IsExternalLinked)
	if err := gesture.Begin(req.ExternalProductID); err != nil {
		return nil, err
	}
	if err := gesture.Hover(rmID); err != nil {
		return nil, err
	}
	if _, err := gesture.Drop(); err != nil {
		return nil, err
	}
	commit, err := gesture.Quantity(req.QuantityPerUnit)
	if err != nil {
		return nil, err
	}

	m := &model.RawMaterialMapping{
		RawMaterialID:     commit.InternalID,
		ExternalProductID: commit.ExternalID,
		QuantityPerUnit:   *commit.Quantity,
	}
	if err := s.repo.CreateMapping(ctx, m); err != nil {
		return nil, translateDuplicate(err, commit.InternalID, commit.ExternalID)
	}

	return s.mappingResponse(ctx, material.GroupID, m), nil
}

func (s *rawMaterialService) UpdateMappingQuantity(ctx context.Context, id uuid.UUID, req dto.UpdateWeightedMappingRequest) (*dto.WeightedMappingResponse, error) {
	if err := reconcile.ValidateQuantity(req.QuantityPerUnit); err != nil {
		return nil, err
	}
	m, err := s.repo.UpdateMappingQuantity(ctx, id, req.QuantityPerUnit)
	if err != nil {
		return nil, err
	}

	// Resolve the display name when the owning material (and thus group) is
	// still reachable; orphans fall back to the raw external id.
	if material, ferr := s.repo.FindByID(ctx, m.RawMaterialID); ferr == nil {
		return s.mappingResponse(ctx, material.GroupID, m), nil
	}
	return &dto.WeightedMappingResponse{
		ID:                  m.ID.String(),
		RawMaterialID:       m.RawMaterialID.String(),
		ExternalProductID:   m.ExternalProductID,
		ExternalProductName: m.ExternalProductID,
		QuantityPerUnit:     m.QuantityPerUnit,
	}, nil
}

func (s *rawMaterialService) DeleteMapping(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindMappingByID(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteMapping(ctx, id)
}

func (s *rawMaterialService) mappingResponse(ctx context.Context, groupID uuid.UUID, m *model.RawMaterialMapping) *dto.WeightedMappingResponse {
	name := m.ExternalProductID
	if products, err := s.loadProducts(ctx, groupID); err == nil {
		name = externalName(productNameIndex(products), m.ExternalProductID)
	}
	return &dto.WeightedMappingResponse{
		ID:                  m.ID.String(),
		RawMaterialID:       m.RawMaterialID.String(),
		ExternalProductID:   m.ExternalProductID,
		ExternalProductName: name,
		QuantityPerUnit:     m.QuantityPerUnit,
	}
}
