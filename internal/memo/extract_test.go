package memo

import "testing"

func TestParseSnapshot(t *testing.T) {
	input := `**Company:** Acme Robotics
**Stage:** Series A
not a label line
**Traction:** [120 customers](https://example.com/acme)`

	items := parseSnapshot(input)
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Label != "Company" || items[0].Value != "Acme Robotics" {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	want := `<a href="https://example.com/acme" target="_blank" class="citation">120 customers</a>`
	if items[2].Value != want {
		t.Errorf("expected citation anchor %q, got %q", want, items[2].Value)
	}
}

func TestParseTerms_NoLinkConversion(t *testing.T) {
	input := "**Ticket Size:** £500k-1m\n**Syndicate:** [Foo](https://foo.vc)"
	terms := parseTerms(input)
	if len(terms) != 2 {
		t.Fatalf("expected 2 terms, got %d", len(terms))
	}
	if terms[1].Value != "[Foo](https://foo.vc)" {
		t.Errorf("terms should keep raw markdown, got %q", terms[1].Value)
	}
}

func TestParseFitTable(t *testing.T) {
	input := `| Criterion | Rating | Assessment |
|-----------|--------|------------|
| Stage Fit | Strong | Series A sweet spot |
| Values Alignment | Weak | Mission drift risk |

**Overall Fit:** MODERATE`

	rows, overall := parseFitTable(input)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows (header and separator skipped), got %d", len(rows))
	}
	if rows[0].Criterion != "Stage Fit" || rows[0].Rating != "Strong" || rows[0].Assessment != "Series A sweet spot" {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
	if overall != "MODERATE" {
		t.Errorf("expected overall %q, got %q", "MODERATE", overall)
	}
}

func TestParseFitTable_ShortAndEmptyRowsSkipped(t *testing.T) {
	input := "| Lonely |\n|  | Strong | missing criterion |\n| Stage Fit | Strong | ok |"
	rows, _ := parseFitTable(input)
	if len(rows) != 1 {
		t.Fatalf("expected 1 valid row, got %d", len(rows))
	}
	if rows[0].Criterion != "Stage Fit" {
		t.Errorf("unexpected row: %+v", rows[0])
	}
}

func TestParseFitTable_OverallCaseVariants(t *testing.T) {
	_, overall := parseFitTable("**Overall Fit:** strong")
	if overall != "STRONG" {
		t.Errorf("expected rating uppercased, got %q", overall)
	}
}

func TestParseBullets(t *testing.T) {
	input := `- **Regulatory Risk** - approval pending
- **Moat:** - strong network effects
- just a note
prose line ignored`

	points := parseBullets(input)
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	if points[0].Title != "Regulatory Risk" || points[0].Description != "approval pending" {
		t.Errorf("unexpected first point: %+v", points[0])
	}
	if points[1].Title != "Moat" {
		t.Errorf("expected trailing colon trimmed from title, got %q", points[1].Title)
	}
	if points[2].Title != "" || points[2].Description != "just a note" {
		t.Errorf("expected untitled point, got %+v", points[2])
	}
}

func TestParseDebates(t *testing.T) {
	input := `1. **Is the market real?**: Bull sees £10bn, bear sees £500m
2. Can the team scale?
- bullet ignored`

	debates := parseDebates(input)
	if len(debates) != 2 {
		t.Fatalf("expected 2 debates, got %d", len(debates))
	}
	if debates[0].Question != "Is the market real?" {
		t.Errorf("unexpected question %q", debates[0].Question)
	}
	if debates[0].Views != "Bull sees £10bn, bear sees £500m" {
		t.Errorf("unexpected views %q", debates[0].Views)
	}
	if debates[1].Question != "Can the team scale?" || debates[1].Views != "" {
		t.Errorf("expected question-only debate, got %+v", debates[1])
	}
}

func TestParseVerdict(t *testing.T) {
	input := `# PURSUE

**Confidence:** HIGH

We land on the bull side because **traction is verified**.`

	verdict, confidence, rationale := parseVerdict(input)
	if verdict != "PURSUE" {
		t.Errorf("expected verdict %q, got %q", "PURSUE", verdict)
	}
	if confidence != "HIGH" {
		t.Errorf("expected confidence %q, got %q", "HIGH", confidence)
	}
	want := "We land on the bull side because <strong>traction is verified</strong>."
	if rationale != want {
		t.Errorf("expected rationale %q, got %q", want, rationale)
	}
}

func TestParseVerdict_BareVerdictLine(t *testing.T) {
	verdict, _, _ := parseVerdict("MONITOR\n\nToo early.")
	if verdict != "MONITOR" {
		t.Errorf("expected %q, got %q", "MONITOR", verdict)
	}
}

func TestParseVerdict_MarkersOnlyYieldEmptyRationale(t *testing.T) {
	_, _, rationale := parseVerdict("# PASS\n**Confidence:** LOW")
	if rationale != "" {
		t.Errorf("expected empty rationale, got %q", rationale)
	}
}

func TestParseVerdict_ConfidenceVariants(t *testing.T) {
	_, confidence, _ := parseVerdict("Confidence: medium")
	if confidence != "MEDIUM" {
		t.Errorf("expected confidence uppercased, got %q", confidence)
	}
}

func TestParseRisks(t *testing.T) {
	input := `Critical Risks:
1. **Churn:** cohort data unproven
2. Key person: single technical founder
3. no colon so dropped

Information Gaps: Unit economics detail needed.
Revenue figures unverified.`

	risks, gaps := parseRisks(input)
	if len(risks) != 2 {
		t.Fatalf("expected 2 risks, got %d", len(risks))
	}
	if risks[0].Title != "Churn" || risks[0].Description != "cohort data unproven" {
		t.Errorf("unexpected bold risk: %+v", risks[0])
	}
	if risks[1].Title != "Key person" || risks[1].Description != "single technical founder" {
		t.Errorf("unexpected plain risk: %+v", risks[1])
	}
	want := "Unit economics detail needed. Revenue figures unverified."
	if gaps != want {
		t.Errorf("expected gaps %q, got %q", want, gaps)
	}
}

func TestParseRisks_NoGapsMarkerMeansNoGaps(t *testing.T) {
	risks, gaps := parseRisks("Key Risks:\n1. **Churn:** bad\ntrailing prose without marker")
	if len(risks) != 1 {
		t.Fatalf("expected 1 risk, got %d", len(risks))
	}
	if gaps != "" {
		t.Errorf("expected no gaps without marker, got %q", gaps)
	}
}

func TestParseDD(t *testing.T) {
	input := `If we proceed, answer these first:
1. Validate the churn cohort data
2. Reference the CTO
- not numbered`

	priorities := parseDD(input)
	if len(priorities) != 2 {
		t.Fatalf("expected 2 priorities, got %d", len(priorities))
	}
	if priorities[0] != "Validate the churn cohort data" {
		t.Errorf("unexpected first priority %q", priorities[0])
	}
}
