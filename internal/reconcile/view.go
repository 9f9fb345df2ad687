package reconcile

import (
	"strings"

	"github.com/google/uuid"
)

// PageSize is fixed across all reconciliation screens.
const PageSize = 20

// Status is the tri-state mapped/unmapped filter, applied to a side after
// search.
type Status string

const (
	StatusAll      Status = "all"
	StatusMapped   Status = "mapped"
	StatusUnmapped Status = "unmapped"
)

// ParseStatus maps query-string values onto the tri-state; anything
// unrecognized means no restriction.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusMapped, StatusUnmapped:
		return Status(s)
	default:
		return StatusAll
	}
}

// Descriptor parameterizes the view model per entity family, replacing the
// four near-identical screen implementations with one module. Nil predicates
// mean "no restriction"; nil facet accessors disable that facet.
type Descriptor[I, E any] struct {
	InternalID     func(I) uuid.UUID
	InternalLabel  func(I) string
	InternalSearch func(I) []string
	InternalOK     func(I) bool

	ExternalID     func(E) string
	ExternalLabel  func(E) string
	ExternalSearch func(E) []string
	ExternalOK     func(E) bool

	// CompanyCode feeds the resolver annotation and the company facet.
	CompanyCode func(E) string
	// FacetGroup feeds the product-group facet (raw-material screen only).
	FacetGroup func(E) string
}

// Page is one deterministic slice of a filtered side, insertion order
// preserved.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
	Page       int `json:"page"`
}

// View derives everything the reconciliation panels need from the raw lists.
// It is rebuilt (or its mappings swapped) whenever an input changes; filter
// and page setters mutate only presentation state.
type View[I, E any] struct {
	desc      Descriptor[I, E]
	internals []I
	externals []E
	idx       *mappingIndex

	intSearch string
	extSearch string
	intStatus Status
	extStatus Status
	intPage   int
	extPage   int

	groupFacet   map[string]struct{}
	companyFacet map[string]struct{}
}

// NewView applies the family's eligibility predicates up front — they run
// before any user filter and are not escapable by one.
func NewView[I, E any](desc Descriptor[I, E], internals []I, externals []E, mappings []Mapping) *View[I, E] {
	v := &View[I, E]{
		desc:      desc,
		intStatus: StatusAll,
		extStatus: StatusAll,
		intPage:   1,
		extPage:   1,
		idx:       newMappingIndex(mappings),
	}
	for _, it := range internals {
		if desc.InternalOK == nil || desc.InternalOK(it) {
			v.internals = append(v.internals, it)
		}
	}
	for _, ex := range externals {
		if desc.ExternalOK == nil || desc.ExternalOK(ex) {
			v.externals = append(v.externals, ex)
		}
	}
	return v
}

// SetMappings swaps the mapping set after a mutation reload. Pages are
// deliberately kept — a link/unlink must not bounce the user back to page 1.
func (v *View[I, E]) SetMappings(mappings []Mapping) {
	v.idx = newMappingIndex(mappings)
}

func (v *View[I, E]) SetInternalSearch(q string) {
	v.intSearch = strings.ToLower(strings.TrimSpace(q))
	v.intPage = 1
}

func (v *View[I, E]) SetExternalSearch(q string) {
	v.extSearch = strings.ToLower(strings.TrimSpace(q))
	v.extPage = 1
}

func (v *View[I, E]) SetInternalStatus(s Status) {
	v.intStatus = s
	v.intPage = 1
}

func (v *View[I, E]) SetExternalStatus(s Status) {
	v.extStatus = s
	v.extPage = 1
}

func (v *View[I, E]) SetInternalPage(p int) {
	if p < 1 {
		p = 1
	}
	v.intPage = p
}

func (v *View[I, E]) SetExternalPage(p int) {
	if p < 1 {
		p = 1
	}
	v.extPage = p
}

// SetGroupFacet restricts the external side to the selected product groups.
// An empty selection means no restriction. Resets the external page.
func (v *View[I, E]) SetGroupFacet(groups []string) {
	v.groupFacet = toSet(groups)
	v.extPage = 1
}

// SetCompanyFacet restricts the external side to the selected company codes.
func (v *View[I, E]) SetCompanyFacet(codes []string) {
	v.companyFacet = toSet(codes)
	v.extPage = 1
}

// IsExternalLinked reports whether any mapping references the external id.
func (v *View[I, E]) IsExternalLinked(externalID string) bool {
	return v.idx.isExternalLinked(externalID)
}

// MappingsFor returns every mapping whose internal side equals the id,
// regardless of the backing representation.
func (v *View[I, E]) MappingsFor(internalID uuid.UUID) []Mapping {
	return v.idx.mappingsFor(internalID)
}

// InternalPage computes the current page of the internal side.
func (v *View[I, E]) InternalPage() Page[I] {
	filtered := make([]I, 0, len(v.internals))
	for _, it := range v.internals {
		if v.intSearch != "" && !matches(v.desc.InternalSearch(it), v.intSearch) {
			continue
		}
		if v.intStatus != StatusAll {
			linked := len(v.idx.mappingsFor(v.desc.InternalID(it))) > 0
			if (v.intStatus == StatusMapped) != linked {
				continue
			}
		}
		filtered = append(filtered, it)
	}
	return paginate(filtered, v.intPage)
}

// ExternalPage computes the current page of the external side.
func (v *View[I, E]) ExternalPage() Page[E] {
	filtered := make([]E, 0, len(v.externals))
	for _, ex := range v.externals {
		if v.extSearch != "" && !matches(v.desc.ExternalSearch(ex), v.extSearch) {
			continue
		}
		if v.extStatus != StatusAll {
			linked := v.idx.isExternalLinked(v.desc.ExternalID(ex))
			if (v.extStatus == StatusMapped) != linked {
				continue
			}
		}
		if len(v.groupFacet) > 0 && v.desc.FacetGroup != nil {
			if _, ok := v.groupFacet[v.desc.FacetGroup(ex)]; !ok {
				continue
			}
		}
		if len(v.companyFacet) > 0 && v.desc.CompanyCode != nil {
			if _, ok := v.companyFacet[v.desc.CompanyCode(ex)]; !ok {
				continue
			}
		}
		filtered = append(filtered, ex)
	}
	return paginate(filtered, v.extPage)
}

// matches reports whether any indexed field contains the lowercased query.
func matches(fields []string, query string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

// paginate truncates deterministically; a page past the end yields an empty
// item slice, never an error.
func paginate[T any](items []T, page int) Page[T] {
	total := len(items)
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages == 0 {
		totalPages = 1
	}
	start := (page - 1) * PageSize
	if start > total {
		start = total
	}
	end := start + PageSize
	if end > total {
		end = total
	}
	return Page[T]{
		Items:      items[start:end],
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
	}
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, val := range values {
		if val = strings.TrimSpace(val); val != "" {
			set[val] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}
