package memo

import (
	"regexp"
	"strings"
)

// Section is a contiguous block introduced by a level-3 heading.
type Section struct {
	Name string   // heading text, uppercased
	Body []string // verbatim lines up to the next heading or end of input
}

// lineKind classifies a trimmed line once, so the sectionizer and the
// extractors dispatch on a tag instead of re-testing patterns ad hoc.
type lineKind int

const (
	lineText lineKind = iota
	lineTitle
	lineHeading2
	lineHeading3
	lineRule
	lineBullet
	lineNumbered
	lineBoldKV
)

var numberedRe = regexp.MustCompile(`^\d+\.`)

func classifyLine(trimmed string) lineKind {
	switch {
	case strings.HasPrefix(trimmed, "### "):
		return lineHeading3
	case strings.HasPrefix(trimmed, "## "):
		return lineHeading2
	case strings.HasPrefix(trimmed, "# "):
		return lineTitle
	case trimmed == "---":
		return lineRule
	case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
		return lineBullet
	case numberedRe.MatchString(trimmed):
		return lineNumbered
	case strings.HasPrefix(trimmed, "**") && strings.Contains(trimmed, ":**"):
		return lineBoldKV
	}
	return lineText
}

var emphasisStripper = strings.NewReplacer("**", "", "*", "")

// Sectionize splits a memo document into its title-line values and named
// sections. Level-2 headings and bare horizontal rules are purely visual
// and are dropped wherever they appear. A document with no level-3 heading
// yields zero sections.
func Sectionize(text string) (companyName, verdict string, sections []Section) {
	var current *Section

	flush := func() {
		if current != nil && len(current.Body) > 0 {
			sections = append(sections, *current)
		}
		current = nil
	}

	for _, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(raw)

		switch classifyLine(trimmed) {
		case lineTitle:
			// Title line carries either the company name or, when the model
			// renders its verdict as a heading, the verdict itself.
			name := strings.TrimSpace(emphasisStripper.Replace(trimmed[2:]))
			switch strings.ToUpper(name) {
			case VerdictPursue, VerdictPass, VerdictMonitor:
				verdict = strings.ToUpper(name)
			default:
				companyName = name
			}
		case lineHeading3:
			flush()
			current = &Section{Name: strings.ToUpper(strings.TrimSpace(trimmed[4:]))}
		case lineHeading2, lineRule:
			// visual separators
		default:
			if current != nil {
				current.Body = append(current.Body, raw)
			}
		}
	}
	flush()
	return companyName, verdict, sections
}
