package reconcile

import (
	"testing"

	"vionup/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOwningCompany(t *testing.T) {
	extID := uuid.New()
	companyID := uuid.New()

	externals := []model.ExternalCompany{
		{ID: extID, ExternalID: "01", ExternalCode: "MTZ", Name: "Matriz Ext"},
	}
	mappings := []model.CompanyMapping{
		{ExternalCompanyID: extID, CompanyID: companyID},
	}
	companies := []model.Company{
		{ID: companyID, Name: "Matriz"},
	}

	r := NewResolver(externals, mappings, companies)

	c := r.ResolveOwningCompany("01")
	require.NotNil(t, c)
	assert.Equal(t, "Matriz", c.Name)
}

func TestResolveOwningCompany_FallbackToExternalCode(t *testing.T) {
	extID := uuid.New()
	companyID := uuid.New()

	r := NewResolver(
		[]model.ExternalCompany{{ID: extID, ExternalID: "zz-9", ExternalCode: "81", Name: "Filial"}},
		[]model.CompanyMapping{{ExternalCompanyID: extID, CompanyID: companyID}},
		[]model.Company{{ID: companyID, Name: "Filial Centro"}},
	)

	c := r.ResolveOwningCompany("81")
	require.NotNil(t, c)
	assert.Equal(t, "Filial Centro", c.Name)
}

func TestResolveOwningCompany_ExternalIDWinsOverCode(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	companyA := uuid.New()
	companyB := uuid.New()

	// "01" is the external_id of one record and the external_code of another;
	// the external_id match must win.
	r := NewResolver(
		[]model.ExternalCompany{
			{ID: b, ExternalID: "99", ExternalCode: "01"},
			{ID: a, ExternalID: "01", ExternalCode: "X"},
		},
		[]model.CompanyMapping{
			{ExternalCompanyID: a, CompanyID: companyA},
			{ExternalCompanyID: b, CompanyID: companyB},
		},
		[]model.Company{{ID: companyA, Name: "A"}, {ID: companyB, Name: "B"}},
	)

	c := r.ResolveOwningCompany("01")
	require.NotNil(t, c)
	assert.Equal(t, "A", c.Name)
}

func TestResolveOwningCompany_MissingHops(t *testing.T) {
	extID := uuid.New()

	r := NewResolver(
		[]model.ExternalCompany{{ID: extID, ExternalID: "01"}},
		nil, // no company mapping
		nil,
	)

	assert.Nil(t, r.ResolveOwningCompany(""), "empty code")
	assert.Nil(t, r.ResolveOwningCompany("99"), "no external company")
	assert.Nil(t, r.ResolveOwningCompany("01"), "no company mapping")
}

func TestResolveOwningCompany_DanglingCompany(t *testing.T) {
	extID := uuid.New()

	// Mapping points at a company that no longer exists.
	r := NewResolver(
		[]model.ExternalCompany{{ID: extID, ExternalID: "01"}},
		[]model.CompanyMapping{{ExternalCompanyID: extID, CompanyID: uuid.New()}},
		nil,
	)

	assert.Nil(t, r.ResolveOwningCompany("01"))
}
