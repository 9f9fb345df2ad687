// Package reconcile implements the cross-source reconciliation core: the
// company resolution chain, the generic view model over internal/external
// entity panels, and the assignment protocol that turns user gestures into
// validated mapping requests. Everything here is pure derivation — no
// persistence, no transport.
package reconcile

import (
	"vionup/internal/model"

	"github.com/google/uuid"
)

// Resolver walks external company code → external company row → company
// mapping → canonical company. The external source identifies companies by a
// short code meaningful only within that source ("01", "81"); internal
// linkage is keyed by stable UUIDs, hence the three hops.
type Resolver struct {
	byExternalID   map[string]model.ExternalCompany
	byExternalCode map[string]model.ExternalCompany
	mappingByExt   map[uuid.UUID]model.CompanyMapping
	companyByID    map[uuid.UUID]model.Company
}

// NewResolver indexes the loaded sets once; first occurrence wins when the
// source carries duplicate codes (order undefined upstream).
func NewResolver(externals []model.ExternalCompany, mappings []model.CompanyMapping, companies []model.Company) *Resolver {
	r := &Resolver{
		byExternalID:   make(map[string]model.ExternalCompany, len(externals)),
		byExternalCode: make(map[string]model.ExternalCompany, len(externals)),
		mappingByExt:   make(map[uuid.UUID]model.CompanyMapping, len(mappings)),
		companyByID:    make(map[uuid.UUID]model.Company, len(companies)),
	}
	for _, e := range externals {
		if e.ExternalID != "" {
			if _, ok := r.byExternalID[e.ExternalID]; !ok {
				r.byExternalID[e.ExternalID] = e
			}
		}
		if e.ExternalCode != "" {
			if _, ok := r.byExternalCode[e.ExternalCode]; !ok {
				r.byExternalCode[e.ExternalCode] = e
			}
		}
	}
	for _, m := range mappings {
		if _, ok := r.mappingByExt[m.ExternalCompanyID]; !ok {
			r.mappingByExt[m.ExternalCompanyID] = m
		}
	}
	for _, c := range companies {
		r.companyByID[c.ID] = c
	}
	return r
}

// ResolveOwningCompany returns the canonical company that owns the given
// external company code, or nil when any hop is missing. A missing hop is not
// an error condition — the caller renders it as absence of a badge.
func (r *Resolver) ResolveOwningCompany(code string) *model.Company {
	if code == "" {
		return nil
	}
	ext, ok := r.byExternalID[code]
	if !ok {
		ext, ok = r.byExternalCode[code]
	}
	if !ok {
		return nil
	}
	m, ok := r.mappingByExt[ext.ID]
	if !ok {
		return nil
	}
	c, ok := r.companyByID[m.CompanyID]
	if !ok {
		return nil
	}
	return &c
}
