package memo

import (
	"html"
	"regexp"
	"strings"
)

var (
	emptyLabelLinkRe  = regexp.MustCompile(`\[\]\([^)]*\)`)
	emptyTargetLinkRe = regexp.MustCompile(`\[[^\]]+\]\(\)`)
	linkRe            = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	boldRe            = regexp.MustCompile(`\*\*(.+?)\*\*`)
	bulletSplitRe     = regexp.MustCompile(`\n[-*]\s`)
	numberedItemRe    = regexp.MustCompile(`^\d+\.\s`)
)

func convertLinks(text string) string {
	return linkRe.ReplaceAllString(text, `<a href="${2}" target="_blank" class="citation">${1}</a>`)
}

// RenderInline converts the memo's restricted markdown subset (bold, links,
// paragraphs, bullet lists) to an HTML fragment. Models occasionally emit
// empty citations like `[](url)` or `[text]()` when no source was found;
// those are removed outright. With preserveBreaks, single newlines inside a
// paragraph become explicit <br> breaks instead of collapsing to spaces.
//
// Numbered lines are not special here; the dedicated list extractors own
// that grammar, and a stray numbered line in free text renders as prose.
func RenderInline(text string, preserveBreaks bool) string {
	text = emptyLabelLinkRe.ReplaceAllString(text, "")
	text = emptyTargetLinkRe.ReplaceAllString(text, "")
	text = convertLinks(text)
	text = boldRe.ReplaceAllString(text, "<strong>${1}</strong>")

	var parts []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		switch {
		case strings.HasPrefix(p, "- ") || strings.HasPrefix(p, "* "):
			items := bulletSplitRe.Split(p, -1)
			items[0] = items[0][2:]
			var sb strings.Builder
			sb.WriteString("<ul>")
			for _, item := range items {
				if item = strings.TrimSpace(item); item != "" {
					sb.WriteString("<li>" + item + "</li>")
				}
			}
			sb.WriteString("</ul>")
			parts = append(parts, sb.String())
		case preserveBreaks:
			var kept []string
			for _, l := range strings.Split(p, "\n") {
				if l = strings.TrimSpace(l); l != "" {
					kept = append(kept, l)
				}
			}
			parts = append(parts, "<p>"+strings.Join(kept, "<br>\n")+"</p>")
		default:
			parts = append(parts, "<p>"+strings.ReplaceAll(p, "\n", " ")+"</p>")
		}
	}
	return strings.Join(parts, "\n")
}

// RenderTranscript renders free-form analyst output (the appendix bull/bear
// cases and deliberation) line by line, HTML-escaped. Unlike RenderInline it
// accepts headings and numbered lists, since the raw transcripts were never
// asked to follow the memo format.
func RenderTranscript(text string) string {
	var out []string
	var list []string
	inList := false

	closeList := func() {
		if inList && len(list) > 0 {
			out = append(out, "<ul>"+strings.Join(list, "")+"</ul>")
		}
		list = nil
		inList = false
	}

	for _, raw := range strings.Split(strings.TrimSpace(text), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			closeList()
			continue
		}

		escaped := html.EscapeString(line)
		escaped = boldRe.ReplaceAllString(escaped, "<strong>${1}</strong>")

		switch classifyLine(line) {
		case lineHeading3:
			closeList()
			out = append(out, "<h4>"+escaped[4:]+"</h4>")
		case lineHeading2:
			closeList()
			out = append(out, "<h3>"+escaped[3:]+"</h3>")
		case lineTitle:
			closeList()
			out = append(out, "<h3>"+escaped[2:]+"</h3>")
		case lineBullet:
			inList = true
			list = append(list, "<li>"+escaped[2:]+"</li>")
		case lineNumbered:
			// "1.5x returns" classifies as numbered but is prose here.
			if !numberedItemRe.MatchString(line) {
				closeList()
				out = append(out, "<p>"+escaped+"</p>")
				continue
			}
			inList = true
			list = append(list, "<li>"+numberedPfxRe.ReplaceAllString(escaped, "")+"</li>")
		default:
			closeList()
			out = append(out, "<p>"+escaped+"</p>")
		}
	}
	closeList()

	return strings.Join(out, "\n")
}
