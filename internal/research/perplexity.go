package research

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultPerplexityURL is the Perplexity OpenAI-compatible endpoint.
const DefaultPerplexityURL = "https://api.perplexity.ai"

// Perplexity talks to the Perplexity chat-completions API (OpenAI wire
// format) for web research with citations.
type Perplexity struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewPerplexity(baseURL, apiKey, model string) *Perplexity {
	if baseURL == "" {
		baseURL = DefaultPerplexityURL
	}
	if model == "" {
		model = "sonar-pro"
	}
	return &Perplexity{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// Enabled reports whether an API key is configured.
func (c *Perplexity) Enabled() bool {
	return c.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Citations []string `json:"citations"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Perplexity) chat(ctx context.Context, prompt string) (string, []string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", nil, fmt.Errorf("perplexity api: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("perplexity status %d: %s", resp.StatusCode, firstLine(string(respBody)))
	}

	var apiResp chatResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", nil, fmt.Errorf("decode response: %w", err)
	}
	if apiResp.Error != nil {
		return "", nil, fmt.Errorf("perplexity error: %s", apiResp.Error.Message)
	}
	if len(apiResp.Choices) == 0 {
		return "", nil, fmt.Errorf("empty response from perplexity")
	}
	return apiResp.Choices[0].Message.Content, apiResp.Citations, nil
}

// InvestorReport runs the dedicated funding and investor query.
func (c *Perplexity) InvestorReport(ctx context.Context, company, industry string) (string, error) {
	prompt := fmt.Sprintf(`List ALL funding rounds and investors for %q (UK %s company).

For EACH funding round, provide:
- Round name (Seed, Series A, Series B, etc.)
- Date (month and year)
- Amount raised
- Lead investor(s)
- All participating investors
- Valuation (if known)

Also list:
- Any angel investors by name
- Government grants (Innovate UK, UKRI, etc.)
- Total funding raised to date

Be specific - name every investor mentioned in any source. Cite the source URL for each fact.`, company, industry)

	content, citations, err := c.chat(ctx, prompt)
	if err != nil {
		return "", err
	}
	if len(citations) > 0 {
		var sb strings.Builder
		sb.WriteString(content)
		sb.WriteString("\n\nSOURCES:\n")
		for i, u := range citations {
			fmt.Fprintf(&sb, "[%d] %s\n", i+1, u)
		}
		content = sb.String()
	}
	return content, nil
}

// GeneralReport runs the broad screening research query. The citation list
// is appended with explicit usage instructions so the synthesis step cites
// verified URLs instead of inventing them.
func (c *Perplexity) GeneralReport(ctx context.Context, company, industry, product string, founders []string) (string, error) {
	founderStr := "the founders"
	if len(founders) > 0 {
		if len(founders) > 3 {
			founders = founders[:3]
		}
		founderStr = strings.Join(founders, ", ")
	}

	prompt := fmt.Sprintf(`Research the company %q in the %s sector for a venture capital investment screening.

Provide comprehensive, factual information on:

1. **Company Overview**: What does %[1]s do? When founded? HQ location? Business model (B2B/B2C/marketplace)?

2. **Funding History & Investors** (search Crunchbase, PitchBook, tech news):
   - All known funding rounds - dates, amounts, valuations
   - WHO invested in each round (lead investors and participants)
   - Name specific investors (VCs, angels, strategic investors)
   - Any Innovate UK grants, SEIS/EIS raises, or government funding
   - If funding details aren't found, explicitly state "No funding round details found on Crunchbase or similar sources"

3. **Traction & Metrics**: Revenue, growth rate, customers, partnerships, or any public performance data.

4. **Founders & Team - SEARCH THOROUGHLY**:
   - Search LinkedIn, Crunchbase, and news for each founder: %[3]s
   - For each person find: previous companies, exits, education, notable achievements
   - Any red flags (lawsuits, failed ventures, controversies)?
   - If you cannot find information on a founder, explicitly state "No independent information found for [name]"

5. **Competitive Landscape**: Who are the 3-5 closest competitors? How do they compare on funding, scale, approach? What's %[1]s's differentiation?

6. **Market Size**: TAM/SAM/SOM for %[2]s (product: %[4]s). Growth projections. Key market drivers and headwinds.

7. **Red Flags & Concerns**: Any negative press, regulatory issues, customer complaints, or reasons for concern?

8. **Recent News**: Latest developments in the past 6-12 months.

Be specific with numbers, dates, and sources where possible. If information is not available, say so explicitly rather than guessing.

IMPORTANT: For each fact you provide, cite the specific source URL where you found it. Use inline citations like [1], [2] etc. and list all URLs at the end. Only cite URLs that actually contain the specific information.`,
		company, industry, founderStr, product)

	content, citations, err := c.chat(ctx, prompt)
	if err != nil {
		return "", err
	}

	divider := strings.Repeat("=", 60)
	var sb strings.Builder
	sb.WriteString(content)
	if len(citations) > 0 {
		sb.WriteString("\n\n" + divider + "\n")
		sb.WriteString("IMPORTANT: USE THESE VERIFIED SOURCE URLs FOR CITATIONS\n")
		sb.WriteString(divider + "\n")
		for i, u := range citations {
			fmt.Fprintf(&sb, "[%d] %s\n", i+1, u)
		}
		sb.WriteString(divider + "\n")
		sb.WriteString("When citing facts, use format: [claim](URL from list above)\n")
		sb.WriteString("Do NOT cite the company's own site for third-party claims like funding.\n")
		sb.WriteString(divider + "\n")
	} else {
		sb.WriteString("\n\n## SOURCES\nNo structured citations returned - verify claims independently.\n")
	}
	return sb.String(), nil
}

// Close releases idle connections.
func (c *Perplexity) Close() {
	c.httpClient.CloseIdleConnections()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 300 {
		s = s[:300] + "..."
	}
	return s
}
