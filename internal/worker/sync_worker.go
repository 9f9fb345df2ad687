package worker

import (
	"context"
	"fmt"
	"time"

	"vionup/internal/infra"
	"vionup/internal/model"
	"vionup/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// SyncPayload identifies which group's external records to refresh.
type SyncPayload struct {
	GroupID string `json:"group_id"`
}

// SyncWorker pulls the current export from the ERP gateway and replaces the
// group's external records wholesale. Mappings are never touched: a record
// that disappears from the export simply becomes an orphan on the next read.
type SyncWorker struct {
	erp     *infra.ERPClient
	extRepo repository.ExternalRepository
	rdb     *redis.Client
}

func NewSyncWorker(erp *infra.ERPClient, extRepo repository.ExternalRepository, rdb *redis.Client) *SyncWorker {
	return &SyncWorker{erp: erp, extRepo: extRepo, rdb: rdb}
}

func (w *SyncWorker) Process(ctx context.Context, payload SyncPayload) error {
	groupID, err := uuid.Parse(payload.GroupID)
	if err != nil {
		return fmt.Errorf("sync: invalid group id %q: %w", payload.GroupID, err)
	}

	start := time.Now()
	now := start.UTC()

	companies, err := w.erp.FetchCompanies(ctx, payload.GroupID)
	if err != nil {
		return fmt.Errorf("sync: fetch companies: %w", err)
	}
	products, err := w.erp.FetchProducts(ctx, payload.GroupID)
	if err != nil {
		return fmt.Errorf("sync: fetch products: %w", err)
	}
	employees, err := w.erp.FetchEmployees(ctx, payload.GroupID)
	if err != nil {
		return fmt.Errorf("sync: fetch employees: %w", err)
	}

	extCompanies := make([]model.ExternalCompany, 0, len(companies))
	for _, c := range companies {
		extCompanies = append(extCompanies, model.ExternalCompany{
			GroupID:      groupID,
			ExternalID:   c.ID,
			ExternalCode: c.Code,
			Name:         c.Name,
			ImportedAt:   now,
		})
	}
	extProducts := make([]model.ExternalProduct, 0, len(products))
	for _, p := range products {
		extProducts = append(extProducts, model.ExternalProduct{
			GroupID:           groupID,
			ExternalID:        p.ID,
			ExternalCode:      p.Code,
			Name:              p.Name,
			ProductGroup:      p.ProductGroup,
			ExternalCompanyID: p.CompanyCode,
			ImportedAt:        now,
		})
	}
	extEmployees := make([]model.ExternalEmployee, 0, len(employees))
	for _, e := range employees {
		extEmployees = append(extEmployees, model.ExternalEmployee{
			GroupID:           groupID,
			ExternalID:        e.ID,
			Name:              e.Name,
			ExternalCompanyID: e.CompanyCode,
			ImportedAt:        now,
		})
	}

	if err := w.extRepo.ReplaceCompanies(ctx, groupID, extCompanies); err != nil {
		return fmt.Errorf("sync: replace companies: %w", err)
	}
	if err := w.extRepo.ReplaceProducts(ctx, groupID, extProducts); err != nil {
		return fmt.Errorf("sync: replace products: %w", err)
	}
	if err := w.extRepo.ReplaceEmployees(ctx, groupID, extEmployees); err != nil {
		return fmt.Errorf("sync: replace employees: %w", err)
	}

	infra.InvalidateKeys(ctx, w.rdb,
		fmt.Sprintf("external:products:%s", payload.GroupID),
		fmt.Sprintf("external:employees:%s", payload.GroupID),
		fmt.Sprintf("external:companies:%s", payload.GroupID),
	)

	log.Info().
		Str("group_id", payload.GroupID).
		Int("companies", len(extCompanies)).
		Int("products", len(extProducts)).
		Int("employees", len(extEmployees)).
		Dur("elapsed", time.Since(start)).
		Msg("external records refreshed")
	return nil
}
