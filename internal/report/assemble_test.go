package report

import (
	"strings"
	"testing"

	"github.com/bramble-partners/screener/internal/memo"
)

func TestTemplate_Contract(t *testing.T) {
	tmpl := Template()

	for _, want := range []string{
		"{{COMPANY_NAME}}", "{{DATE}}", "{{SOURCE}}", "{{SNAPSHOT}}",
		"{{FIT_TABLE}}", "{{BULL_CASE}}", "{{BEAR_CASE}}", "{{KEY_DEBATES}}",
		"{{VERDICT}}", "{{VERDICT_CLASS}}", "{{TERMS_SECTION}}", "{{RISKS}}",
		"{{DD_PRIORITIES}}", "{{BOTTOM_LINE}}",
		"<!-- ANALYST_APPENDIX_START -->", "<!-- ANALYST_APPENDIX_END -->",
	} {
		if !strings.Contains(tmpl, want) {
			t.Errorf("template missing %q", want)
		}
	}
	if !appendixRe.MatchString(tmpl) {
		t.Error("appendix markers must bracket a removable region")
	}
}

func TestAssemble_FullMemo(t *testing.T) {
	m := memo.Memo{
		CompanyName: "Acme Robotics",
		Snapshot: []memo.LabelValue{
			{Label: "Stage", Value: "Seed"},
			{Label: "Raise", Value: "£2m"},
		},
		Opportunity: "<p>Warehouse automation for mid-market grocers.</p>",
		Market:      "<p>Large and growing.</p>",
		Competition: "<p>Fragmented incumbents.</p>",
		Team:        "<p>Strong technical founders.</p>",
		Investors:   "<p>Seedcamp led the pre-seed.</p>",
		FitTable: []memo.FitRow{
			{Criterion: "Stage Fit", Rating: "STRONG", Assessment: "Squarely seed"},
		},
		OverallFit: "STRONG",
		BullCase: []memo.CasePoint{
			{Title: "Moat", Description: "proprietary motion planning"},
		},
		BearCase: []memo.CasePoint{
			{Description: "unproven unit economics"},
		},
		KeyDebates: []memo.Debate{
			{Question: "Can they scale installs?", Views: "Bull says yes; bear doubts it."},
		},
		Verdict:          memo.VerdictPursue,
		Confidence:       "MEDIUM",
		VerdictRationale: "Traction outweighs the risks.",
		Terms: []memo.LabelValue{
			{Label: "Ticket Size", Value: "£400k"},
			{Label: "Rationale", Value: "Meaningful ownership at this stage."},
			{Label: "Instrument", Value: "SAFE"},
		},
		Risks: []memo.CasePoint{
			{Title: "Execution Risk", Description: "small team, big roadmap"},
		},
		InfoGaps:     "Unit economics per site unverified.",
		DDPriorities: []string{"Customer references", "Unit economics review"},
		BottomLine:   "<p>Back the team.</p>",
	}
	p := Params{
		Source:       "acme_deck.pdf",
		Date:         "26 August 2026",
		BullAnalyst:  "## CASE\nStrong tailwinds.",
		BearAnalyst:  "## CASE\nToo early.",
		Deliberation: "Bull wins on evidence.",
	}

	got := Assemble(m, p)

	for _, want := range []string{
		"Acme Robotics",
		"26 August 2026",
		"acme_deck.pdf",
		`<span class="snapshot-label">Stage</span>`,
		`<span class="snapshot-value">£2m</span>`,
		"Warehouse automation for mid-market grocers.",
		`<span class="rating-badge strong">STRONG</span>`,
		"<strong>Overall Fit: STRONG</strong>",
		`<span class="case-title">Moat:</span> proprietary motion planning`,
		"<li>unproven unit economics</li>",
		`<span class="debate-question">Can they scale installs?</span>`,
		`<span class="debate-views">Bull says yes; bear doubts it.</span>`,
		`<span class="verdict pursue">PURSUE</span>`,
		"Traction outweighs the risks.",
		"Proposed Terms",
		`<span class="risk-title">Execution Risk:</span> small team, big roadmap`,
		"Information Gaps",
		"<li>Customer references</li>",
		"Back the team.",
		"<h3>CASE</h3>",
		"Bull wins on evidence.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("assembled report missing %q", want)
		}
	}

	if strings.Contains(got, "{{") {
		idx := strings.Index(got, "{{")
		t.Errorf("unreplaced placeholder near %q", got[idx:idx+min(40, len(got)-idx)])
	}
}

func TestAssemble_BottomLineUnwrapped(t *testing.T) {
	m := memo.Memo{BottomLine: "<p>One line.</p>"}
	got := Assemble(m, Params{Date: "x"})
	if strings.Contains(got, "<p>One line.</p>") {
		t.Error("bottom line should have its paragraph tags stripped")
	}
	if !strings.Contains(got, "One line.") {
		t.Error("bottom line text missing")
	}
}

func TestAssemble_AppendixRemovedWithoutTranscripts(t *testing.T) {
	got := Assemble(memo.Memo{CompanyName: "Acme"}, Params{Date: "x"})
	if strings.Contains(got, "ANALYST_APPENDIX_START") {
		t.Error("appendix markers should be removed")
	}
	if strings.Contains(got, "{{BULL_ANALYST}}") {
		t.Error("appendix placeholders should be removed with the region")
	}
}

func TestAssemble_AppendixRequiresBothSides(t *testing.T) {
	got := Assemble(memo.Memo{}, Params{Date: "x", BullAnalyst: "only one side"})
	if strings.Contains(got, "only one side") {
		t.Error("appendix should not render with a single transcript")
	}
}

func TestAssemble_DefaultsForEmptyMemo(t *testing.T) {
	got := Assemble(memo.Memo{}, Params{Date: "x"})

	if !strings.Contains(got, "<p>No prior investor information found.</p>") {
		t.Error("missing investor default")
	}
	if strings.Count(got, "<p>Not provided</p>") != 3 {
		t.Errorf("expected bull, bear and debates defaults, got %d", strings.Count(got, "<p>Not provided</p>"))
	}
}

func TestRenderTerms(t *testing.T) {
	terms := []memo.LabelValue{
		{Label: "Ticket Size", Value: "£400k"},
		{Label: "Rationale", Value: "Ownership target."},
		{Label: "Valuation Guidance", Value: "£5m cap"},
	}

	t.Run("pursue renders terms", func(t *testing.T) {
		got := renderTerms(memo.VerdictPursue, terms)
		if !strings.Contains(got, `<div class="term-value">£400k</div>`) {
			t.Errorf("missing ticket size in %q", got)
		}
		if !strings.Contains(got, `<div class="term-rationale">Ownership target.</div>`) {
			t.Errorf("rationale should nest under ticket size in %q", got)
		}
		if strings.Contains(got, `<div class="term-label">Rationale</div>`) {
			t.Errorf("rationale must not render as its own card in %q", got)
		}
		if !strings.Contains(got, "£5m cap") {
			t.Errorf("missing valuation in %q", got)
		}
	})

	t.Run("non-pursue suppresses terms", func(t *testing.T) {
		for _, verdict := range []string{memo.VerdictPass, memo.VerdictMonitor, ""} {
			if got := renderTerms(verdict, terms); got != "" {
				t.Errorf("verdict %q: expected empty, got %q", verdict, got)
			}
		}
	})

	t.Run("pursue without terms", func(t *testing.T) {
		if got := renderTerms(memo.VerdictPursue, nil); got != "" {
			t.Errorf("expected empty, got %q", got)
		}
	})
}

func TestRenderFitTable_RatingClass(t *testing.T) {
	got := renderFitTable([]memo.FitRow{
		{Criterion: "Stage Fit", Rating: "MODERATE TO STRONG", Assessment: "depends on round size"},
	}, "")
	if !strings.Contains(got, `<span class="rating-badge moderate">MODERATE TO STRONG</span>`) {
		t.Errorf("rating class should be the first word lowercased, got %q", got)
	}
	if strings.Contains(got, "overall-fit") {
		t.Errorf("no overall block expected when overall is empty, got %q", got)
	}
}

func TestRenderRisks_NoGaps(t *testing.T) {
	got := renderRisks([]memo.CasePoint{{Title: "Key Risk", Description: "churn"}}, "")
	if strings.Contains(got, "info-gaps") {
		t.Errorf("no gaps block expected, got %q", got)
	}
	if !strings.Contains(got, `<span class="risk-title">Key Risk:</span> churn`) {
		t.Errorf("missing risk entry in %q", got)
	}
}
