package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ERP export record shapes. The gateway exposes the point-of-sale export as
// plain JSON; company references are short source-local codes, never UUIDs.

type ERPProduct struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	ProductGroup string `json:"product_group"`
	CompanyCode  string `json:"company_code"`
}

type ERPEmployee struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CompanyCode string `json:"company_code"`
}

type ERPCompany struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// ERPClient talks to the ERP gateway that fronts the external operational
// system. Failures here only affect the sync worker, never a read path.
type ERPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewERPClient(baseURL, token string) *ERPClient {
	return &ERPClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *ERPClient) FetchProducts(ctx context.Context, groupID string) ([]ERPProduct, error) {
	var out []ERPProduct
	err := c.get(ctx, "/export/products?group="+groupID, &out)
	return out, err
}

func (c *ERPClient) FetchEmployees(ctx context.Context, groupID string) ([]ERPEmployee, error) {
	var out []ERPEmployee
	err := c.get(ctx, "/export/employees?group="+groupID, &out)
	return out, err
}

func (c *ERPClient) FetchCompanies(ctx context.Context, groupID string) ([]ERPCompany, error) {
	var out []ERPCompany
	err := c.get(ctx, "/export/companies?group="+groupID, &out)
	return out, err
}

func (c *ERPClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("erp: create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("erp: gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("erp: gateway returned %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("erp: decode response: %w", err)
	}
	return nil
}
