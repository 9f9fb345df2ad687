package service

import (
	"context"

	"vionup/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. They return gorm.ErrRecordNotFound for misses
// so the services' not-found branches behave exactly as against Postgres.

// ── RawMaterialRepository stub ───────────────────────────────────────────────

type stubRawMaterialRepo struct {
	materials map[uuid.UUID]*model.RawMaterial
	mappings  map[uuid.UUID]*model.RawMaterialMapping
}

func newStubRawMaterialRepo() *stubRawMaterialRepo {
	return &stubRawMaterialRepo{
		materials: make(map[uuid.UUID]*model.RawMaterial),
		mappings:  make(map[uuid.UUID]*model.RawMaterialMapping),
	}
}

func (r *stubRawMaterialRepo) add(m *model.RawMaterial) *model.RawMaterial {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.materials[m.ID] = m
	return m
}

func (r *stubRawMaterialRepo) ListByGroup(_ context.Context, groupID uuid.UUID) ([]model.RawMaterial, error) {
	var out []model.RawMaterial
	for _, m := range r.materials {
		if m.GroupID != groupID || !m.Active {
			continue
		}
		copied := *m
		copied.Mappings = nil
		for _, w := range r.mappings {
			if w.RawMaterialID == m.ID {
				copied.Mappings = append(copied.Mappings, *w)
			}
		}
		out = append(out, copied)
	}
	return out, nil
}

func (r *stubRawMaterialRepo) FindByID(_ context.Context, id uuid.UUID) (*model.RawMaterial, error) {
	m, ok := r.materials[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *stubRawMaterialRepo) CreateMapping(_ context.Context, m *model.RawMaterialMapping) error {
	for _, w := range r.mappings {
		if w.RawMaterialID == m.RawMaterialID && w.ExternalProductID == m.ExternalProductID {
			return gorm.ErrDuplicatedKey
		}
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.mappings[m.ID] = m
	return nil
}

func (r *stubRawMaterialRepo) FindMappingByID(_ context.Context, id uuid.UUID) (*model.RawMaterialMapping, error) {
	m, ok := r.mappings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *stubRawMaterialRepo) FindMappingByPair(_ context.Context, rawMaterialID uuid.UUID, externalProductID string) (*model.RawMaterialMapping, error) {
	for _, m := range r.mappings {
		if m.RawMaterialID == rawMaterialID && m.ExternalProductID == externalProductID {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRawMaterialRepo) UpdateMappingQuantity(_ context.Context, id uuid.UUID, quantity decimal.Decimal) (*model.RawMaterialMapping, error) {
	m, ok := r.mappings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	m.QuantityPerUnit = quantity
	return m, nil
}

func (r *stubRawMaterialRepo) DeleteMapping(_ context.Context, id uuid.UUID) error {
	delete(r.mappings, id)
	return nil
}

// ── ProductRepository stub ───────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
	mappings map[uuid.UUID]*model.ProductMapping
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{
		products: make(map[uuid.UUID]*model.Product),
		mappings: make(map[uuid.UUID]*model.ProductMapping),
	}
}

func (r *stubProductRepo) ListByGroup(_ context.Context, groupID uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.GroupID == groupID && p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) ListMappings(_ context.Context, groupID uuid.UUID) ([]model.ProductMapping, error) {
	var out []model.ProductMapping
	for _, m := range r.mappings {
		if m.GroupID == groupID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindMappingByID(_ context.Context, id uuid.UUID) (*model.ProductMapping, error) {
	m, ok := r.mappings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *stubProductRepo) FindMappingByExternalID(_ context.Context, groupID uuid.UUID, externalID string) (*model.ProductMapping, error) {
	for _, m := range r.mappings {
		if m.GroupID == groupID && m.ExternalID == externalID {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) CreateMapping(_ context.Context, m *model.ProductMapping) error {
	for _, existing := range r.mappings {
		if existing.GroupID == m.GroupID && existing.ExternalID == m.ExternalID {
			return gorm.ErrDuplicatedKey
		}
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.mappings[m.ID] = m
	return nil
}

func (r *stubProductRepo) DeleteMapping(_ context.Context, id uuid.UUID) error {
	delete(r.mappings, id)
	return nil
}

// ── EmployeeRepository stub ──────────────────────────────────────────────────

type stubEmployeeRepo struct {
	employees map[uuid.UUID]*model.Employee
	mappings  map[uuid.UUID]*model.EmployeeMapping
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{
		employees: make(map[uuid.UUID]*model.Employee),
		mappings:  make(map[uuid.UUID]*model.EmployeeMapping),
	}
}

func (r *stubEmployeeRepo) ListByGroup(_ context.Context, groupID uuid.UUID) ([]model.Employee, error) {
	var out []model.Employee
	for _, e := range r.employees {
		if e.GroupID == groupID && e.Active {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubEmployeeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (r *stubEmployeeRepo) Create(_ context.Context, e *model.Employee) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.employees[e.ID] = e
	return nil
}

func (r *stubEmployeeRepo) ListMappings(_ context.Context, groupID uuid.UUID) ([]model.EmployeeMapping, error) {
	var out []model.EmployeeMapping
	for _, m := range r.mappings {
		if m.GroupID == groupID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubEmployeeRepo) FindMappingByID(_ context.Context, id uuid.UUID) (*model.EmployeeMapping, error) {
	m, ok := r.mappings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *stubEmployeeRepo) FindMappingByExternalID(_ context.Context, groupID uuid.UUID, externalID string) (*model.EmployeeMapping, error) {
	for _, m := range r.mappings {
		if m.GroupID == groupID && m.ExternalID == externalID {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubEmployeeRepo) CreateMapping(_ context.Context, m *model.EmployeeMapping) error {
	for _, existing := range r.mappings {
		if existing.GroupID == m.GroupID && existing.ExternalID == m.ExternalID {
			return gorm.ErrDuplicatedKey
		}
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.mappings[m.ID] = m
	return nil
}

func (r *stubEmployeeRepo) DeleteMapping(_ context.Context, id uuid.UUID) error {
	delete(r.mappings, id)
	return nil
}

// ── CompanyRepository stub ───────────────────────────────────────────────────

type stubCompanyRepo struct {
	companies map[uuid.UUID]*model.Company
	mappings  map[uuid.UUID]*model.CompanyMapping
}

func newStubCompanyRepo() *stubCompanyRepo {
	return &stubCompanyRepo{
		companies: make(map[uuid.UUID]*model.Company),
		mappings:  make(map[uuid.UUID]*model.CompanyMapping),
	}
}

func (r *stubCompanyRepo) add(c *model.Company) *model.Company {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.companies[c.ID] = c
	return c
}

func (r *stubCompanyRepo) ListByGroup(_ context.Context, groupID uuid.UUID) ([]model.Company, error) {
	var out []model.Company
	for _, c := range r.companies {
		if c.GroupID == groupID && c.Active {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCompanyRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCompanyRepo) ListMappings(_ context.Context, groupID uuid.UUID) ([]model.CompanyMapping, error) {
	var out []model.CompanyMapping
	for _, m := range r.mappings {
		if m.GroupID == groupID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubCompanyRepo) FindMappingByID(_ context.Context, id uuid.UUID) (*model.CompanyMapping, error) {
	m, ok := r.mappings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *stubCompanyRepo) FindMappingByExternalCompanyID(_ context.Context, externalCompanyID uuid.UUID) (*model.CompanyMapping, error) {
	for _, m := range r.mappings {
		if m.ExternalCompanyID == externalCompanyID {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCompanyRepo) CreateMapping(_ context.Context, m *model.CompanyMapping) error {
	for _, existing := range r.mappings {
		if existing.ExternalCompanyID == m.ExternalCompanyID {
			return gorm.ErrDuplicatedKey
		}
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.mappings[m.ID] = m
	return nil
}

func (r *stubCompanyRepo) DeleteMapping(_ context.Context, id uuid.UUID) error {
	delete(r.mappings, id)
	return nil
}

// ── ExternalRepository stub ──────────────────────────────────────────────────

type stubExternalRepo struct {
	products  []model.ExternalProduct
	employees []model.ExternalEmployee
	companies []model.ExternalCompany
}

func (r *stubExternalRepo) ListProducts(_ context.Context, groupID uuid.UUID) ([]model.ExternalProduct, error) {
	var out []model.ExternalProduct
	for _, p := range r.products {
		if p.GroupID == groupID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubExternalRepo) ListEmployees(_ context.Context, groupID uuid.UUID) ([]model.ExternalEmployee, error) {
	var out []model.ExternalEmployee
	for _, e := range r.employees {
		if e.GroupID == groupID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubExternalRepo) ListCompanies(_ context.Context, groupID uuid.UUID) ([]model.ExternalCompany, error) {
	var out []model.ExternalCompany
	for _, c := range r.companies {
		if c.GroupID == groupID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *stubExternalRepo) ReplaceProducts(_ context.Context, groupID uuid.UUID, records []model.ExternalProduct) error {
	var kept []model.ExternalProduct
	for _, p := range r.products {
		if p.GroupID != groupID {
			kept = append(kept, p)
		}
	}
	r.products = append(kept, records...)
	return nil
}

func (r *stubExternalRepo) ReplaceEmployees(_ context.Context, groupID uuid.UUID, records []model.ExternalEmployee) error {
	var kept []model.ExternalEmployee
	for _, e := range r.employees {
		if e.GroupID != groupID {
			kept = append(kept, e)
		}
	}
	r.employees = append(kept, records...)
	return nil
}

func (r *stubExternalRepo) ReplaceCompanies(_ context.Context, groupID uuid.UUID, records []model.ExternalCompany) error {
	var kept []model.ExternalCompany
	for _, c := range r.companies {
		if c.GroupID != groupID {
			kept = append(kept, c)
		}
	}
	r.companies = append(kept, records...)
	return nil
}

// ── UserRepository stub ──────────────────────────────────────────────────────

type stubUserRepo struct {
	users map[string]*model.User
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	u, ok := r.users[username]
	if !ok || !u.Active {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}
