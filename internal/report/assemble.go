// Package report fills the memo template with a structured memo and
// optionally exports the result to PDF.
package report

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/bramble-partners/screener/internal/memo"
)

//go:embed template.html
var defaultTemplate string

// Template returns the embedded memo template.
func Template() string {
	return defaultTemplate
}

// Params carries the assembly inputs that live outside the structured memo.
type Params struct {
	Source       string // original deck filename
	Date         string // display date; today when empty
	BullAnalyst  string // raw bull transcript markdown
	BearAnalyst  string // raw bear transcript markdown
	Deliberation string // raw IC chair deliberation markdown
}

var appendixRe = regexp.MustCompile(`(?s)<!-- ANALYST_APPENDIX_START -->.*?<!-- ANALYST_APPENDIX_END -->`)

// Assemble substitutes the memo into the embedded template. Every
// placeholder is replaced exactly once; list fields are rendered to markup
// immediately before substitution. Assembly is total: an empty memo
// produces a complete, mostly-empty document.
func Assemble(m memo.Memo, p Params) string {
	return assemble(Template(), m, p)
}

func assemble(tmpl string, m memo.Memo, p Params) string {
	date := p.Date
	if date == "" {
		date = time.Now().Format("02 January 2006")
	}

	html := tmpl
	html = strings.ReplaceAll(html, "{{COMPANY_NAME}}", m.CompanyName)
	html = strings.Replace(html, "{{DATE}}", date, 1)
	html = strings.Replace(html, "{{SOURCE}}", p.Source, 1)
	html = strings.Replace(html, "{{OPPORTUNITY}}", m.Opportunity, 1)
	html = strings.Replace(html, "{{MARKET}}", m.Market, 1)
	html = strings.Replace(html, "{{COMPETITION}}", m.Competition, 1)
	html = strings.Replace(html, "{{TEAM}}", m.Team, 1)

	investors := m.Investors
	if investors == "" {
		investors = "<p>No prior investor information found.</p>"
	}
	html = strings.Replace(html, "{{INVESTORS}}", investors, 1)

	html = strings.Replace(html, "{{SNAPSHOT}}", renderSnapshot(m.Snapshot), 1)
	html = strings.Replace(html, "{{FIT_TABLE}}", renderFitTable(m.FitTable, m.OverallFit), 1)
	html = strings.Replace(html, "{{BULL_CASE}}", renderCaseList(m.BullCase, "bull"), 1)
	html = strings.Replace(html, "{{BEAR_CASE}}", renderCaseList(m.BearCase, "bear"), 1)
	html = strings.Replace(html, "{{KEY_DEBATES}}", renderDebates(m.KeyDebates), 1)

	html = strings.Replace(html, "{{VERDICT}}", m.Verdict, 1)
	html = strings.Replace(html, "{{VERDICT_CLASS}}", strings.ToLower(m.Verdict), 1)
	html = strings.Replace(html, "{{CONFIDENCE}}", m.Confidence, 1)
	html = strings.Replace(html, "{{CONFIDENCE_CLASS}}", strings.ToLower(m.Confidence), 1)
	html = strings.Replace(html, "{{VERDICT_RATIONALE}}", m.VerdictRationale, 1)

	html = strings.Replace(html, "{{TERMS_SECTION}}", renderTerms(m.Verdict, m.Terms), 1)
	html = strings.Replace(html, "{{RISKS}}", renderRisks(m.Risks, m.InfoGaps), 1)
	html = strings.Replace(html, "{{DD_PRIORITIES}}", renderDD(m.DDPriorities), 1)

	bottom := strings.ReplaceAll(m.BottomLine, "<p>", "")
	bottom = strings.ReplaceAll(bottom, "</p>", "")
	html = strings.Replace(html, "{{BOTTOM_LINE}}", bottom, 1)

	// The appendix only makes sense when both analyst transcripts exist;
	// otherwise the whole bracketed region goes.
	if p.BullAnalyst != "" && p.BearAnalyst != "" {
		html = strings.Replace(html, "{{BULL_ANALYST}}", memo.RenderTranscript(p.BullAnalyst), 1)
		html = strings.Replace(html, "{{BEAR_ANALYST}}", memo.RenderTranscript(p.BearAnalyst), 1)
		deliberation := ""
		if p.Deliberation != "" {
			deliberation = memo.RenderTranscript(p.Deliberation)
		}
		html = strings.Replace(html, "{{DELIBERATION}}", deliberation, 1)
		html = strings.Replace(html, "{{ANALYST_SECTIONS}}", "", 1)
	} else {
		html = appendixRe.ReplaceAllString(html, "")
	}

	return html
}

func renderSnapshot(items []memo.LabelValue) string {
	var sb strings.Builder
	for _, item := range items {
		fmt.Fprintf(&sb, `
        <div class="snapshot-row">
            <span class="snapshot-label">%s</span>
            <span class="snapshot-value">%s</span>
        </div>`, item.Label, item.Value)
	}
	return sb.String()
}

func renderFitTable(rows []memo.FitRow, overall string) string {
	var sb strings.Builder
	sb.WriteString(`<table class="fit-table"><thead><tr><th>Criterion</th><th>Rating</th><th>Assessment</th></tr></thead><tbody>`)
	for _, row := range rows {
		ratingClass := ""
		if fields := strings.Fields(strings.ToLower(row.Rating)); len(fields) > 0 {
			ratingClass = fields[0]
		}
		fmt.Fprintf(&sb, `
        <tr>
            <td class="criterion">%s</td>
            <td class="rating"><span class="rating-badge %s">%s</span></td>
            <td>%s</td>
        </tr>`, row.Criterion, ratingClass, row.Rating, row.Assessment)
	}
	sb.WriteString("</tbody></table>")
	if overall != "" {
		fmt.Fprintf(&sb, `<div class="overall-fit"><strong>Overall Fit: %s</strong></div>`, overall)
	}
	return sb.String()
}

func renderCaseList(points []memo.CasePoint, side string) string {
	if len(points) == 0 {
		return "<p>Not provided</p>"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, `<ul class="case-list %s">`, side)
	for _, point := range points {
		if point.Title != "" {
			fmt.Fprintf(&sb, `<li><span class="case-title">%s:</span> %s</li>`, point.Title, point.Description)
		} else {
			fmt.Fprintf(&sb, `<li>%s</li>`, point.Description)
		}
	}
	sb.WriteString("</ul>")
	return sb.String()
}

func renderDebates(debates []memo.Debate) string {
	if len(debates) == 0 {
		return "<p>Not provided</p>"
	}
	var sb strings.Builder
	sb.WriteString(`<ul class="debates-list">`)
	for _, d := range debates {
		fmt.Fprintf(&sb, `<li><span class="debate-question">%s</span>`, d.Question)
		if d.Views != "" {
			fmt.Fprintf(&sb, `<span class="debate-views">%s</span>`, d.Views)
		}
		sb.WriteString("</li>")
	}
	sb.WriteString("</ul>")
	return sb.String()
}

// renderTerms builds the proposed-terms block. It appears only on a PURSUE
// verdict with terms present. A "rationale" entry is folded under the
// ticket-size entry instead of rendering as its own card.
func renderTerms(verdict string, terms []memo.LabelValue) string {
	if verdict != memo.VerdictPursue || len(terms) == 0 {
		return ""
	}

	ticketRationale := ""
	for _, t := range terms {
		if strings.Contains(strings.ToLower(t.Label), "rationale") {
			ticketRationale = t.Value
			break
		}
	}

	var sb strings.Builder
	sb.WriteString(`
        <div class="section">
            <h2 class="section-title">Proposed Terms</h2>
            <div class="terms-grid">`)
	for _, t := range terms {
		label := strings.ToLower(t.Label)
		if strings.Contains(label, "rationale") {
			continue
		}
		if strings.Contains(label, "ticket size") && ticketRationale != "" {
			fmt.Fprintf(&sb, `
                <div class="term-item">
                    <div class="term-label">%s</div>
                    <div class="term-value">%s</div>
                    <div class="term-rationale">%s</div>
                </div>`, t.Label, t.Value, ticketRationale)
		} else {
			fmt.Fprintf(&sb, `
                <div class="term-item">
                    <div class="term-label">%s</div>
                    <div class="term-value">%s</div>
                </div>`, t.Label, t.Value)
		}
	}
	sb.WriteString("</div></div>")
	return sb.String()
}

func renderRisks(risks []memo.CasePoint, infoGaps string) string {
	var sb strings.Builder
	sb.WriteString(`<ul class="risk-list">`)
	for _, r := range risks {
		fmt.Fprintf(&sb, `
        <li>
            <span class="risk-title">%s:</span> %s
        </li>`, r.Title, r.Description)
	}
	sb.WriteString("</ul>")
	if infoGaps != "" {
		fmt.Fprintf(&sb, `
        <div class="info-gaps">
            <div class="info-gaps-title">Information Gaps</div>
            %s
        </div>`, infoGaps)
	}
	return sb.String()
}

func renderDD(priorities []string) string {
	var sb strings.Builder
	sb.WriteString(`<ul class="dd-list">`)
	for _, p := range priorities {
		fmt.Fprintf(&sb, "<li>%s</li>", p)
	}
	sb.WriteString("</ul>")
	return sb.String()
}
