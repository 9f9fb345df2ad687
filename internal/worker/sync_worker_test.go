package worker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"vionup/internal/infra"
	"vionup/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingExtRepo struct {
	products  []model.ExternalProduct
	employees []model.ExternalEmployee
	companies []model.ExternalCompany
}

func (r *recordingExtRepo) ListProducts(_ context.Context, _ uuid.UUID) ([]model.ExternalProduct, error) {
	return r.products, nil
}

func (r *recordingExtRepo) ListEmployees(_ context.Context, _ uuid.UUID) ([]model.ExternalEmployee, error) {
	return r.employees, nil
}

func (r *recordingExtRepo) ListCompanies(_ context.Context, _ uuid.UUID) ([]model.ExternalCompany, error) {
	return r.companies, nil
}

func (r *recordingExtRepo) ReplaceProducts(_ context.Context, _ uuid.UUID, records []model.ExternalProduct) error {
	r.products = records
	return nil
}

func (r *recordingExtRepo) ReplaceEmployees(_ context.Context, _ uuid.UUID, records []model.ExternalEmployee) error {
	r.employees = records
	return nil
}

func (r *recordingExtRepo) ReplaceCompanies(_ context.Context, _ uuid.UUID, records []model.ExternalCompany) error {
	r.companies = records
	return nil
}

func TestSyncWorkerProcess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/export/companies":
			_, _ = w.Write([]byte(`[{"id":"SRC-01","code":"01","name":"FILIAL CENTRO"}]`))
		case "/export/products":
			_, _ = w.Write([]byte(`[{"id":"EXT-1","code":"P1","name":"PIZZA","product_group":"venda","company_code":"01"},
				{"id":"EXT-2","code":"P2","name":"CALDA","product_group":"subproduto","company_code":"01"}]`))
		case "/export/employees":
			_, _ = w.Write([]byte(`[{"id":"EMP-1","name":"MARIA","company_code":"01"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	repo := &recordingExtRepo{
		// Pre-existing records from a previous import get replaced wholesale
		products: []model.ExternalProduct{{ExternalID: "STALE"}},
	}
	w := NewSyncWorker(infra.NewERPClient(srv.URL, ""), repo, nil)

	groupID := uuid.New()
	err := w.Process(context.Background(), SyncPayload{GroupID: groupID.String()})
	require.NoError(t, err)

	require.Len(t, repo.companies, 1)
	assert.Equal(t, "SRC-01", repo.companies[0].ExternalID)
	assert.Equal(t, "01", repo.companies[0].ExternalCode)
	assert.Equal(t, groupID, repo.companies[0].GroupID)

	// Subproducts are imported verbatim; filtering happens at read time
	require.Len(t, repo.products, 2)
	assert.Equal(t, "EXT-1", repo.products[0].ExternalID)
	assert.Equal(t, "01", repo.products[0].ExternalCompanyID)
	assert.Equal(t, "subproduto", repo.products[1].ProductGroup)

	require.Len(t, repo.employees, 1)
	assert.Equal(t, "EMP-1", repo.employees[0].ExternalID)
	assert.False(t, repo.products[0].ImportedAt.IsZero())
}

func TestSyncWorkerInvalidGroupID(t *testing.T) {
	w := NewSyncWorker(infra.NewERPClient("http://localhost:0", ""), &recordingExtRepo{}, nil)
	err := w.Process(context.Background(), SyncPayload{GroupID: "not-a-uuid"})
	require.Error(t, err)
}
