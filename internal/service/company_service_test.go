package service

import (
	"context"
	"testing"

	"vionup/internal/dto"
	"vionup/internal/model"
	"vionup/internal/reconcile"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompanyFixture() (*stubCompanyRepo, *stubExternalRepo, CompanyService, uuid.UUID) {
	repo := newStubCompanyRepo()
	extRepo := &stubExternalRepo{}
	svc := NewCompanyService(repo, extRepo)
	return repo, extRepo, svc, uuid.New()
}

func TestCompanyCreateMappingAndResolve(t *testing.T) {
	repo, extRepo, svc, groupID := newCompanyFixture()

	company := repo.add(&model.Company{GroupID: groupID, Name: "Filial Sul Ltda", Active: true})
	ext := model.ExternalCompany{ID: uuid.New(), GroupID: groupID, ExternalID: "SRC-81", ExternalCode: "81", Name: "FILIAL SUL"}
	extRepo.companies = []model.ExternalCompany{ext}

	resp, err := svc.CreateMapping(context.Background(), dto.CreateCompanyMappingRequest{
		GroupID:           groupID.String(),
		CompanyID:         company.ID.String(),
		ExternalCompanyID: ext.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, "FILIAL SUL", resp.ExternalName)

	// The new link completes the chain for both id and code lookups
	byID, err := svc.ResolveOwningCompany(context.Background(), groupID, "SRC-81")
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Filial Sul Ltda", byID.Name)

	byCode, err := svc.ResolveOwningCompany(context.Background(), groupID, "81")
	require.NoError(t, err)
	require.NotNil(t, byCode)
	assert.Equal(t, byID.ID, byCode.ID)
}

func TestCompanyResolveMissingHops(t *testing.T) {
	repo, extRepo, svc, groupID := newCompanyFixture()

	// External record exists but carries no mapping; and a fully unknown code
	extRepo.companies = []model.ExternalCompany{
		{ID: uuid.New(), GroupID: groupID, ExternalID: "SRC-01", ExternalCode: "01", Name: "CENTRO"},
	}
	repo.add(&model.Company{GroupID: groupID, Name: "Centro Ltda", Active: true})

	unmapped, err := svc.ResolveOwningCompany(context.Background(), groupID, "01")
	require.NoError(t, err)
	assert.Nil(t, unmapped)

	unknown, err := svc.ResolveOwningCompany(context.Background(), groupID, "99")
	require.NoError(t, err)
	assert.Nil(t, unknown)
}

func TestCompanyCreateMappingDuplicateExternal(t *testing.T) {
	repo, extRepo, svc, groupID := newCompanyFixture()

	first := repo.add(&model.Company{GroupID: groupID, Name: "Matriz", Active: true})
	second := repo.add(&model.Company{GroupID: groupID, Name: "Matriz Holding", Active: true})
	ext := model.ExternalCompany{ID: uuid.New(), GroupID: groupID, ExternalID: "SRC-02", ExternalCode: "02", Name: "MATRIZ"}
	extRepo.companies = []model.ExternalCompany{ext}

	_, err := svc.CreateMapping(context.Background(), dto.CreateCompanyMappingRequest{
		GroupID: groupID.String(), CompanyID: first.ID.String(), ExternalCompanyID: ext.ID.String(),
	})
	require.NoError(t, err)

	_, err = svc.CreateMapping(context.Background(), dto.CreateCompanyMappingRequest{
		GroupID: groupID.String(), CompanyID: second.ID.String(), ExternalCompanyID: ext.ID.String(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, reconcile.ErrDuplicateMapping)
}

func TestCompanyDeleteMappingBreaksChain(t *testing.T) {
	repo, extRepo, svc, groupID := newCompanyFixture()

	company := repo.add(&model.Company{GroupID: groupID, Name: "Norte Ltda", Active: true})
	ext := model.ExternalCompany{ID: uuid.New(), GroupID: groupID, ExternalID: "SRC-03", ExternalCode: "03", Name: "NORTE"}
	extRepo.companies = []model.ExternalCompany{ext}

	resp, err := svc.CreateMapping(context.Background(), dto.CreateCompanyMappingRequest{
		GroupID: groupID.String(), CompanyID: company.ID.String(), ExternalCompanyID: ext.ID.String(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMapping(context.Background(), uuid.MustParse(resp.ID)))

	resolved, err := svc.ResolveOwningCompany(context.Background(), groupID, "03")
	require.NoError(t, err)
	assert.Nil(t, resolved)
}
