package reconcile

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Mapping is the shape-neutral view of a persisted link record. The flat
// simple-mapping lists and the nested weighted collections embedded on raw
// materials both adapt into this form at the service boundary, so the view
// model never cares which representation the API used.
type Mapping struct {
	ID         uuid.UUID
	InternalID uuid.UUID
	ExternalID string
	// Quantity is set only for weighted (bill-of-materials) links.
	Quantity *decimal.Decimal
}

// mappingIndex answers the two linked-status questions the view model needs.
type mappingIndex struct {
	byExternal map[string][]Mapping
	byInternal map[uuid.UUID][]Mapping
}

func newMappingIndex(mappings []Mapping) *mappingIndex {
	idx := &mappingIndex{
		byExternal: make(map[string][]Mapping, len(mappings)),
		byInternal: make(map[uuid.UUID][]Mapping, len(mappings)),
	}
	for _, m := range mappings {
		idx.byExternal[m.ExternalID] = append(idx.byExternal[m.ExternalID], m)
		idx.byInternal[m.InternalID] = append(idx.byInternal[m.InternalID], m)
	}
	return idx
}

func (idx *mappingIndex) isExternalLinked(externalID string) bool {
	return len(idx.byExternal[externalID]) > 0
}

func (idx *mappingIndex) mappingsFor(internalID uuid.UUID) []Mapping {
	return idx.byInternal[internalID]
}
