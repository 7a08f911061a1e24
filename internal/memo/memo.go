// Package memo parses the markdown screening memo produced by the analyst
// debate into a structured record, and renders its restricted markdown
// subset to HTML fragments.
//
// Parsing is total: any input, including the empty string or text with
// unmatched markers, yields a Memo. Malformed lines are dropped or kept as
// untitled entries; a missing section leaves its field empty.
package memo

import "strings"

// Verdict values the pipeline recognises.
const (
	VerdictPursue  = "PURSUE"
	VerdictPass    = "PASS"
	VerdictMonitor = "MONITOR"
)

// LabelValue is one `**Label:** value` entry from the snapshot or terms.
type LabelValue struct {
	Label string
	Value string // HTML fragment (snapshot values carry converted links)
}

// FitRow is one scored row of the fit table.
type FitRow struct {
	Criterion  string
	Rating     string
	Assessment string
}

// CasePoint is a titled argument from the bull case, bear case or risk list.
type CasePoint struct {
	Title       string // empty when the line had no bold header
	Description string
}

// Debate is one numbered question from the key-debates section.
type Debate struct {
	Question string
	Views    string
}

// Memo is the structured form of a screening memo. String fields marked
// HTML hold rendered fragments ready for template substitution.
type Memo struct {
	CompanyName      string
	Opportunity      string // HTML
	Snapshot         []LabelValue
	Market           string // HTML
	Competition      string // HTML
	Team             string // HTML, line breaks preserved
	Investors        string // HTML
	FitTable         []FitRow
	OverallFit       string // STRONG, MODERATE, WEAK or empty
	BullCase         []CasePoint
	BearCase         []CasePoint
	KeyDebates       []Debate
	Verdict          string // PURSUE, PASS, MONITOR or empty
	Confidence       string // HIGH, MEDIUM, LOW or empty
	VerdictRationale string // HTML
	Terms            []LabelValue
	Risks            []CasePoint
	InfoGaps         string
	DDPriorities     []string
	BottomLine       string // HTML
}

// Parse converts a full memo markdown document into a Memo.
func Parse(text string) Memo {
	var m Memo
	company, verdict, sections := Sectionize(text)
	m.CompanyName = company
	m.Verdict = verdict
	for _, s := range sections {
		m.applySection(s)
	}
	return m
}

type sectionKind int

const (
	sectionUnknown sectionKind = iota
	sectionOpportunity
	sectionSnapshot
	sectionMarket
	sectionCompetition
	sectionTeam
	sectionInvestors
	sectionFit
	sectionBull
	sectionBear
	sectionDebates
	sectionRecommendation
	sectionTerms
	sectionRisks
	sectionDD
	sectionBottom
)

// classifySection maps an uppercased section heading to a category by
// substring match. Order is the fixed precedence: an ambiguous heading like
// "RISK FIT" classifies as the earlier category (FIT).
func classifySection(name string) sectionKind {
	switch {
	case strings.Contains(name, "OPPORTUNITY"):
		return sectionOpportunity
	case strings.Contains(name, "SNAPSHOT"):
		return sectionSnapshot
	case strings.Contains(name, "MARKET"):
		return sectionMarket
	case strings.Contains(name, "COMPETITIVE"), strings.Contains(name, "COMPETITION"):
		return sectionCompetition
	case strings.Contains(name, "TEAM"):
		return sectionTeam
	case strings.Contains(name, "INVESTOR"):
		return sectionInvestors
	case strings.Contains(name, "FIT"):
		return sectionFit
	case strings.Contains(name, "BULL"):
		return sectionBull
	case strings.Contains(name, "BEAR"):
		return sectionBear
	case strings.Contains(name, "KEY DEBATE"), strings.Contains(name, "DEBATES"):
		return sectionDebates
	case strings.Contains(name, "RECOMMENDATION"):
		return sectionRecommendation
	case strings.Contains(name, "TERMS"):
		return sectionTerms
	case strings.Contains(name, "RISK"):
		return sectionRisks
	case strings.Contains(name, "DUE DILIGENCE"), strings.Contains(name, "DD"):
		return sectionDD
	case strings.Contains(name, "BOTTOM"):
		return sectionBottom
	}
	return sectionUnknown
}

// applySection runs the field extractor for one section. Sections that
// match no category are discarded; this is deliberate tolerance of model
// output drift, not an error.
func (m *Memo) applySection(s Section) {
	text := strings.TrimSpace(strings.Join(s.Body, "\n"))

	switch classifySection(s.Name) {
	case sectionOpportunity:
		m.Opportunity = RenderInline(text, false)
	case sectionSnapshot:
		m.Snapshot = parseSnapshot(text)
	case sectionMarket:
		m.Market = RenderInline(text, false)
	case sectionCompetition:
		m.Competition = RenderInline(text, false)
	case sectionTeam:
		m.Team = RenderInline(text, true)
	case sectionInvestors:
		m.Investors = RenderInline(text, false)
	case sectionFit:
		m.FitTable, m.OverallFit = parseFitTable(text)
	case sectionBull:
		m.BullCase = parseBullets(text)
	case sectionBear:
		m.BearCase = parseBullets(text)
	case sectionDebates:
		m.KeyDebates = parseDebates(text)
	case sectionRecommendation:
		verdict, confidence, rationale := parseVerdict(text)
		// The recommendation section is authoritative over the title line,
		// but only when it actually names a verdict.
		if verdict != "" {
			m.Verdict = verdict
		}
		if confidence != "" {
			m.Confidence = confidence
		}
		m.VerdictRationale = rationale
	case sectionTerms:
		m.Terms = parseTerms(text)
	case sectionRisks:
		m.Risks, m.InfoGaps = parseRisks(text)
	case sectionDD:
		m.DDPriorities = parseDD(text)
	case sectionBottom:
		m.BottomLine = RenderInline(text, false)
	}
}
