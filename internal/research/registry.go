// Package research holds the external research clients: the UK company
// registry and the Perplexity web-research API. Both produce markdown
// reports that flow into the analyst context as-is; callers turn their
// errors into sentinel strings rather than failing the pipeline.
package research

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultRegistryURL is the Companies House public API.
const DefaultRegistryURL = "https://api.company-information.service.gov.uk"

// Registry queries the Companies House API for incorporation data,
// officers, controlling persons and share allotments.
type Registry struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewRegistry(baseURL, apiKey string) *Registry {
	if baseURL == "" {
		baseURL = DefaultRegistryURL
	}
	return &Registry{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Enabled reports whether an API key is configured.
func (c *Registry) Enabled() bool {
	return c.apiKey != ""
}

type companyItem struct {
	Title          string `json:"title"`
	CompanyNumber  string `json:"company_number"`
	CompanyStatus  string `json:"company_status"`
	DateOfCreation string `json:"date_of_creation"`
	AddressSnippet string `json:"address_snippet"`
}

type searchResponse struct {
	Items []companyItem `json:"items"`
}

type officersResponse struct {
	Items []struct {
		Name        string `json:"name"`
		OfficerRole string `json:"officer_role"`
		AppointedOn string `json:"appointed_on"`
		ResignedOn  string `json:"resigned_on"`
	} `json:"items"`
}

type pscResponse struct {
	Items []struct {
		Name             string   `json:"name"`
		NaturesOfControl []string `json:"natures_of_control"`
		NotifiedOn       string   `json:"notified_on"`
	} `json:"items"`
}

type filingsResponse struct {
	Items []struct {
		Date        string `json:"date"`
		Type        string `json:"type"`
		Description string `json:"description"`
	} `json:"items"`
}

// Report searches the registry for the company and renders what it finds
// as a markdown block for the analyst context.
func (c *Registry) Report(ctx context.Context, companyName string) (string, error) {
	company, err := c.findCompany(ctx, companyName)
	if err != nil {
		return "", err
	}
	if company == nil {
		return fmt.Sprintf("No Companies House record found for %q", companyName), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## COMPANIES HOUSE DATA: %s\n", company.Title)
	fmt.Fprintf(&sb, "Company Number: %s\n", company.CompanyNumber)
	fmt.Fprintf(&sb, "Status: %s\n", orUnknown(company.CompanyStatus))
	fmt.Fprintf(&sb, "Incorporated: %s\n", orUnknown(company.DateOfCreation))
	fmt.Fprintf(&sb, "Address: %s\n\n", orUnknown(company.AddressSnippet))

	c.appendOfficers(ctx, &sb, company.CompanyNumber)
	c.appendPSC(ctx, &sb, company.CompanyNumber)
	c.appendAllotments(ctx, &sb, company.CompanyNumber)

	fmt.Fprintf(&sb, "Source: https://find-and-update.company-information.service.gov.uk/company/%s", company.CompanyNumber)
	return sb.String(), nil
}

// findCompany tries name variants with common UK suffixes first, since
// registered names rarely match the brand on the deck, then falls back to
// the bare query.
func (c *Registry) findCompany(ctx context.Context, name string) (*companyItem, error) {
	queries := []string{
		name + " Technologies Limited",
		name + " Technologies Ltd",
		name + " Technologies",
		name + " Limited",
		name + " Ltd",
		name,
	}

	for _, q := range queries {
		var result searchResponse
		if err := c.get(ctx, "/search/companies?q="+url.QueryEscape(q), &result); err != nil {
			continue
		}
		if len(result.Items) > 0 &&
			strings.Contains(strings.ToLower(result.Items[0].Title), strings.ToLower(name)) {
			return &result.Items[0], nil
		}
	}

	var result searchResponse
	if err := c.get(ctx, "/search/companies?q="+url.QueryEscape(name), &result); err != nil {
		return nil, err
	}
	if len(result.Items) == 0 {
		return nil, nil
	}
	return &result.Items[0], nil
}

func (c *Registry) appendOfficers(ctx context.Context, sb *strings.Builder, number string) {
	var officers officersResponse
	if err := c.get(ctx, "/company/"+number+"/officers", &officers); err != nil {
		return
	}
	sb.WriteString("### DIRECTORS & OFFICERS:\n")
	for _, o := range limitItems(officers.Items, 10) {
		status := "(current)"
		if o.ResignedOn != "" {
			status = fmt.Sprintf("(resigned %s)", o.ResignedOn)
		}
		fmt.Fprintf(sb, "- %s - %s - appointed %s %s\n", orUnknown(o.Name), o.OfficerRole, o.AppointedOn, status)
	}
	sb.WriteString("\n")
}

func (c *Registry) appendPSC(ctx context.Context, sb *strings.Builder, number string) {
	var psc pscResponse
	if err := c.get(ctx, "/company/"+number+"/persons-with-significant-control", &psc); err != nil {
		return
	}
	sb.WriteString("### PERSONS WITH SIGNIFICANT CONTROL (>25% ownership):\n")
	for _, p := range limitItems(psc.Items, 10) {
		fmt.Fprintf(sb, "- %s: %s (notified %s)\n", orUnknown(p.Name), strings.Join(p.NaturesOfControl, ", "), p.NotifiedOn)
	}
	sb.WriteString("\n")
}

// appendAllotments lists share-allotment filings, the registry's best
// public signal of funding rounds.
func (c *Registry) appendAllotments(ctx context.Context, sb *strings.Builder, number string) {
	var filings filingsResponse
	if err := c.get(ctx, "/company/"+number+"/filing-history?items_per_page=50", &filings); err != nil {
		return
	}
	sb.WriteString("### RECENT SHARE ALLOTMENTS (potential funding rounds):\n")
	found := 0
	for _, f := range filings.Items {
		if !strings.Contains(strings.ToLower(f.Description), "allotment") && !strings.Contains(f.Type, "SH01") {
			continue
		}
		fmt.Fprintf(sb, "- %s: %s\n", f.Date, f.Description)
		found++
		if found == 10 {
			break
		}
	}
	if found == 0 {
		sb.WriteString("- No share allotments found in recent filings\n")
	}
	sb.WriteString("\n")
}

func (c *Registry) get(ctx context.Context, path string, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	// Companies House uses HTTP basic auth with the key as username.
	auth := base64.StdEncoding.EncodeToString([]byte(c.apiKey + ":"))
	httpReq.Header.Set("Authorization", "Basic "+auth)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("registry request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("registry %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode registry response: %w", err)
	}
	return nil
}

// Close releases idle connections.
func (c *Registry) Close() {
	c.httpClient.CloseIdleConnections()
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func limitItems[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
