// Package screen builds the analyst prompts and interprets their output:
// company identification from the deck, the bull/bear/chair debate, and
// the fence-delimited synthesis split.
package screen

import (
	"encoding/json"
	"strings"

	"github.com/bramble-partners/screener/internal/llm"
)

// Token budgets per call.
const (
	MaxTokensIdentify  = 500
	MaxTokensAnalyst   = 3000
	MaxTokensSynthesis = 7000
)

// identifyDeckBudget caps how much deck text goes into the identification
// prompt; the first pages carry the company name and positioning.
const identifyDeckBudget = 8000

// CompanyInfo is the identification result extracted from the deck.
type CompanyInfo struct {
	CompanyName string   `json:"company_name"`
	Industry    string   `json:"industry"`
	Founders    []string `json:"founders"`
	Product     string   `json:"product"`
}

// defaultCompanyInfo is used when the identification call fails or returns
// unparseable JSON; screening proceeds with generic research prompts.
func defaultCompanyInfo() CompanyInfo {
	return CompanyInfo{
		CompanyName: "Unknown Company",
		Industry:    "technology",
		Product:     "unknown",
	}
}

// ParseCompanyInfo decodes the identification response, tolerating a
// wrapping code fence. It never fails; malformed output yields defaults.
func ParseCompanyInfo(raw string) CompanyInfo {
	text := llm.StripCodeFence(raw)
	var info CompanyInfo
	if err := json.Unmarshal([]byte(text), &info); err != nil {
		return defaultCompanyInfo()
	}
	if strings.TrimSpace(info.CompanyName) == "" {
		return defaultCompanyInfo()
	}
	if info.Industry == "" {
		info.Industry = "technology"
	}
	if info.Product == "" {
		info.Product = "unknown"
	}
	return info
}

// Analysis is the debate outcome: the formatted memo plus the raw
// transcripts that feed the report appendix.
type Analysis struct {
	Memo         string
	BullCase     string
	BearCase     string
	Deliberation string
}

// BuildAnalysis packages the debate transcripts with the chair's synthesis,
// split into memo and deliberation.
func BuildAnalysis(bullCase, bearCase, synthesis string) Analysis {
	memoText, deliberation := SplitSynthesis(synthesis)
	return Analysis{
		Memo:         memoText,
		BullCase:     bullCase,
		BearCase:     bearCase,
		Deliberation: deliberation,
	}
}

// Fences the synthesis prompt asks the chair to emit.
const (
	deliberationFence = "===== DELIBERATION ====="
	memoFence         = "===== MEMO ====="
)

// SplitSynthesis separates the chair's deliberation from the formatted
// memo. Without both fences the entire response is treated as the memo.
func SplitSynthesis(full string) (memoText, deliberation string) {
	if !strings.Contains(full, deliberationFence) || !strings.Contains(full, memoFence) {
		return full, ""
	}
	before, after, _ := strings.Cut(full, memoFence)
	memoText = strings.TrimSpace(after)
	if memoText == "" {
		memoText = full
	}
	if _, d, ok := strings.Cut(before, deliberationFence); ok {
		deliberation = strings.TrimSpace(d)
	}
	return memoText, deliberation
}

// clampRunes cuts text to at most n runes at a word boundary.
func clampRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	cut := string(runes[:n])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return cut
}
