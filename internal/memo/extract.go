package memo

import (
	"regexp"
	"strings"
)

// Field extractors. Each is a pure function of one section's text; a line
// that fails its pattern is dropped (or kept untitled for list sections),
// never an error.

var (
	labelValueRe  = regexp.MustCompile(`^\*\*(.+?):\*\*\s*(.+)`)
	bulletTitleRe = regexp.MustCompile(`^\*\*(.+?)\*\*\s*[-:]+\s*(.+)`)
	numberedPfxRe = regexp.MustCompile(`^\d+\.\s*`)
	debateRe      = regexp.MustCompile(`^\*\*(.+?)\*\*:?\s*(.+)`)
	riskBoldRe    = regexp.MustCompile(`^\d+\.\s*\*\*(.+?):\*\*\s*(.+)`)
	riskPlainRe   = regexp.MustCompile(`^\d+\.\s*(.+?):\s*(.+)`)
	ratingRe      = regexp.MustCompile(`(?i)(STRONG|MODERATE|WEAK)`)
	confidenceRe  = regexp.MustCompile(`(?i)(HIGH|MEDIUM|LOW)`)
	infoGapsRe    = regexp.MustCompile(`(?i)Information Gaps:?\s*(.+)`)

	verdictMarkerRe    = regexp.MustCompile(`#\s*(PURSUE|PASS|MONITOR)`)
	confidenceMarkerRe = regexp.MustCompile(`(?i)\*\*Confidence:\*\*\s*(HIGH|MEDIUM|LOW)`)
)

// parseSnapshot extracts `**Label:** value` lines. Values keep inline
// citations as anchors.
func parseSnapshot(text string) []LabelValue {
	var items []LabelValue
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if classifyLine(line) != lineBoldKV {
			continue
		}
		m := labelValueRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		items = append(items, LabelValue{
			Label: m[1],
			Value: convertLinks(m[2]),
		})
	}
	return items
}

// parseTerms is the snapshot grammar without link conversion.
func parseTerms(text string) []LabelValue {
	var terms []LabelValue
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if classifyLine(line) != lineBoldKV {
			continue
		}
		m := labelValueRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		terms = append(terms, LabelValue{Label: m[1], Value: m[2]})
	}
	return terms
}

// parseFitTable reads pipe-delimited rows (skipping separator rows and the
// header row whose first cell is "Criterion") plus the overall fit line.
// The overall scan is independent of the table scan: an "Overall Fit" line
// is checked whether or not it was also a table row.
func parseFitTable(text string) ([]FitRow, string) {
	var rows []FitRow
	var overall string

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		if strings.HasPrefix(line, "|") && !strings.Contains(line, "---") {
			cells := strings.Split(line, "|")
			// Drop the empty tokens outside the first and last pipes.
			if len(cells) >= 2 {
				cells = cells[1 : len(cells)-1]
			}
			for i := range cells {
				cells[i] = strings.TrimSpace(cells[i])
			}
			if len(cells) >= 3 && cells[0] != "" && !strings.EqualFold(cells[0], "Criterion") {
				rows = append(rows, FitRow{
					Criterion:  cells[0],
					Rating:     cells[1],
					Assessment: cells[2],
				})
			}
		}

		if strings.Contains(line, "Overall Fit") || strings.Contains(line, "OVERALL FIT") {
			if m := ratingRe.FindString(line); m != "" {
				overall = strings.ToUpper(m)
			}
		}
	}
	return rows, overall
}

// parseBullets reads `- **Title** - description` bullets; a bullet without
// a bold header becomes an untitled point.
func parseBullets(text string) []CasePoint {
	var points []CasePoint
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if classifyLine(line) != lineBullet {
			continue
		}
		line = line[2:]
		if m := bulletTitleRe.FindStringSubmatch(line); m != nil {
			points = append(points, CasePoint{
				Title:       strings.TrimRight(m[1], ":"),
				Description: m[2],
			})
		} else if line != "" {
			points = append(points, CasePoint{Description: line})
		}
	}
	return points
}

// parseDebates reads numbered `N. **Question**: views` lines; a line
// without the bold question becomes a question with empty views.
func parseDebates(text string) []Debate {
	var debates []Debate
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if classifyLine(line) != lineNumbered {
			continue
		}
		line = numberedPfxRe.ReplaceAllString(line, "")
		if m := debateRe.FindStringSubmatch(line); m != nil {
			debates = append(debates, Debate{Question: m[1], Views: m[2]})
		} else if line != "" {
			debates = append(debates, Debate{Question: line})
		}
	}
	return debates
}

// parseVerdict scans the recommendation section for the verdict heading,
// a confidence line, and the first plain rationale line. Model output is
// inconsistent about where the rationale lands, so when no standalone
// rationale line exists the whole section (minus verdict and confidence
// markers) is used instead; a section holding nothing else yields an empty
// rationale.
func parseVerdict(text string) (verdict, confidence, rationale string) {
scan:
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "# PURSUE" || line == "# PASS" || line == "# MONITOR":
			verdict = line[2:]
		case line == VerdictPursue || line == VerdictPass || line == VerdictMonitor:
			verdict = line
		case strings.Contains(line, "**Confidence:**") || strings.Contains(line, "Confidence:"):
			if m := confidenceRe.FindString(line); m != "" {
				confidence = strings.ToUpper(m)
			}
		case line != "" && !strings.HasPrefix(line, "#") && !strings.HasPrefix(line, "*") &&
			!strings.Contains(line, "Confidence"):
			rationale = boldRe.ReplaceAllString(line, "<strong>${1}</strong>")
			break scan
		}
	}

	if rationale == "" {
		remaining := strings.TrimSpace(text)
		remaining = verdictMarkerRe.ReplaceAllString(remaining, "")
		remaining = confidenceMarkerRe.ReplaceAllString(remaining, "")
		remaining = boldRe.ReplaceAllString(remaining, "<strong>${1}</strong>")
		rationale = strings.TrimSpace(remaining)
	}
	return verdict, confidence, rationale
}

// parseRisks walks the risks-and-gaps section with an in-risk-list flag:
// numbered lines inside the risk list become titled risks, and free text
// after the "Information Gaps" marker accumulates (space-joined) into the
// gaps note, surviving accidental paragraph breaks.
func parseRisks(text string) ([]CasePoint, string) {
	var risks []CasePoint
	var infoGaps string
	inRisks := false

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		if strings.Contains(line, "Critical Risks") || strings.Contains(line, "Key Risks") {
			inRisks = true
			continue
		}
		if strings.Contains(line, "Information Gaps") {
			inRisks = false
			if m := infoGapsRe.FindStringSubmatch(line); m != nil {
				infoGaps = m[1]
			}
			continue
		}

		if inRisks && classifyLine(line) == lineNumbered {
			if m := riskBoldRe.FindStringSubmatch(line); m != nil {
				risks = append(risks, CasePoint{Title: m[1], Description: m[2]})
			} else if m := riskPlainRe.FindStringSubmatch(line); m != nil {
				risks = append(risks, CasePoint{Title: m[1], Description: m[2]})
			}
		}

		if !inRisks && line != "" && !strings.Contains(line, "Information") {
			if infoGaps != "" {
				infoGaps += " " + line
			}
		}
	}
	return risks, infoGaps
}

// parseDD keeps numbered lines verbatim with the prefix stripped.
func parseDD(text string) []string {
	var priorities []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if classifyLine(line) != lineNumbered {
			continue
		}
		if item := numberedPfxRe.ReplaceAllString(line, ""); item != "" {
			priorities = append(priorities, item)
		}
	}
	return priorities
}
