//go:build integration

package router_test

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vionup/internal/config"
	"vionup/internal/infra"
	"vionup/internal/model"
	"vionup/internal/router"
	"vionup/internal/worker"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Suite setup ──────────────────────────────────────────────────────────────

type testEnv struct {
	server  *httptest.Server
	db      *gorm.DB
	token   string
	groupID uuid.UUID
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("vionup_test"),
		tcPostgres.WithUsername("vionup"),
		tcPostgres.WithPassword("vionup"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:                    8000,
		Env:                     "test",
		JWTSecret:               "test-secret-key",
		JWTExpirationHours:      8,
		DatabaseURL:             pgURL,
		RedisURL:                rdURL,
		WorkerPoolSize:          1,
		ExternalCacheTTLMinutes: 1,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed tenancy root + operator account
	group := model.CompanyGroup{Name: "Grupo E2E", Active: true}
	require.NoError(t, db.Create(&group).Error)

	hash, err := bcrypt.GenerateFromPassword([]byte("senha123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := model.User{
		GroupID:      group.ID,
		Username:     "admin-e2e",
		PasswordHash: string(hash),
		Role:         "administrador",
		Active:       true,
	}
	require.NoError(t, db.Create(&user).Error)

	r := router.New(cfg, db, rdb, worker.NewDispatcher(rdb))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin-e2e", "password": "senha123"}), "")
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var login struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &login)
	require.NotEmpty(t, login.AccessToken)

	return &testEnv{server: srv, db: db, token: login.AccessToken, groupID: group.ID}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2EWeightedMappingLifecycle(t *testing.T) {
	env := setupTestEnv(t)

	material := model.RawMaterial{GroupID: env.groupID, Name: "Queijo", Unit: "kg", Level: model.RawMaterialLevelLeaf, Active: true}
	require.NoError(t, env.db.Create(&material).Error)
	ext := model.ExternalProduct{GroupID: env.groupID, ExternalID: "EXT-1", Name: "PIZZA", ProductGroup: "venda"}
	require.NoError(t, env.db.Create(&ext).Error)

	// Create
	resp := do(t, env.server, "POST", "/v1/raw-materials/mappings", jsonBody(t, map[string]any{
		"raw_material_id":     material.ID.String(),
		"external_product_id": "EXT-1",
		"quantity_per_unit":   "0.2",
	}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID              string `json:"id"`
		QuantityPerUnit string `json:"quantity_per_unit"`
	}
	decodeJSON(t, resp, &created)

	// Same pair again hits the unique index
	resp = do(t, env.server, "POST", "/v1/raw-materials/mappings", jsonBody(t, map[string]any{
		"raw_material_id":     material.ID.String(),
		"external_product_id": "EXT-1",
		"quantity_per_unit":   "0.3",
	}), env.token)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Panel reflects the link on both sides
	resp = do(t, env.server, "GET", "/v1/raw-materials/panels?group_id="+env.groupID.String(), nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var panels struct {
		Internal struct {
			Items []struct {
				Linked   bool `json:"linked"`
				Mappings []struct {
					QuantityPerUnit string `json:"quantity_per_unit"`
				} `json:"mappings"`
			} `json:"items"`
		} `json:"internal"`
		External struct {
			Items []struct {
				Linked bool `json:"linked"`
			} `json:"items"`
		} `json:"external"`
	}
	decodeJSON(t, resp, &panels)
	require.Len(t, panels.Internal.Items, 1)
	assert.True(t, panels.Internal.Items[0].Linked)
	require.Len(t, panels.Internal.Items[0].Mappings, 1)
	assert.Equal(t, "0.2", panels.Internal.Items[0].Mappings[0].QuantityPerUnit)
	require.Len(t, panels.External.Items, 1)
	assert.True(t, panels.External.Items[0].Linked)

	// Update quantity, then delete
	resp = do(t, env.server, "PUT", "/v1/raw-materials/mappings/"+created.ID, jsonBody(t, map[string]any{
		"quantity_per_unit": "0.35",
	}), env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "DELETE", "/v1/raw-materials/mappings/"+created.ID, nil, env.token)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
}

func TestE2EProductQuickCreate(t *testing.T) {
	env := setupTestEnv(t)

	ext := model.ExternalProduct{GroupID: env.groupID, ExternalID: "EXT-QC", Name: "COMBO NOVO", ProductGroup: "venda"}
	require.NoError(t, env.db.Create(&ext).Error)

	resp := do(t, env.server, "POST", "/v1/products/quick-create", jsonBody(t, map[string]any{
		"group_id":    env.groupID.String(),
		"name":        "Combo novo",
		"category":    "combos",
		"external_id": "EXT-QC",
	}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		InternalID   string `json:"internal_id"`
		ExternalName string `json:"external_name"`
	}
	decodeJSON(t, resp, &created)
	assert.Equal(t, "COMBO NOVO", created.ExternalName)

	var count int64
	require.NoError(t, env.db.Model(&model.Product{}).Where("group_id = ?", env.groupID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestE2EAuthRequired(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "GET", "/v1/products/panels?group_id="+env.groupID.String(), nil, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "GET", "/health", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
