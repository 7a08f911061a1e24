package screen

import (
	"fmt"
	"strings"
)

// Prompter builds the analyst prompts around the fund's thesis and fit
// criteria.
type Prompter struct {
	Thesis      string
	FitCriteria []string
}

// DefaultFitCriteria are the fund's standing fit-table rows, overridable
// from the thesis file.
var DefaultFitCriteria = []string{
	"Food System Impact",
	"Stage Fit",
	"Value Chain Position",
	"Values Alignment",
}

func (p *Prompter) criteria() []string {
	if len(p.FitCriteria) > 0 {
		return p.FitCriteria
	}
	return DefaultFitCriteria
}

// IdentifyPrompt asks for the company basics as strict JSON.
func (p *Prompter) IdentifyPrompt(deckText string) string {
	return fmt.Sprintf(`Extract the following from this pitch deck. Return JSON only, no other text.

PITCH DECK:
%s

Return this exact JSON format:
{"company_name": "Name of the company", "industry": "Their industry/sector", "founders": ["Founder 1 name", "Founder 2 name"], "product": "What they sell/do in 5 words"}`,
		clampRunes(deckText, identifyDeckBudget))
}

// SharedContext assembles the source material every analyst sees, with the
// citation discipline spelled out.
func (p *Prompter) SharedContext(deckText, researchText, notes string) string {
	notesSection := ""
	if notes != "" {
		notesSection = "\n\nADDITIONAL NOTES FROM MEETING:\n" + notes
	}
	return fmt.Sprintf(`%s

===== SOURCE 1: PITCH DECK (cite as "per deck") =====
%s

===== SOURCE 2: EXTERNAL RESEARCH (cite with URLs) =====
%s
%s

CITATION RULES:
- Deck content -> cite as "(per deck)"
- External research -> cite as [text](url) using ONLY URLs from the SOURCES list
- No URL available -> mark as "(unverified)"
- NEVER invent URLs`, p.Thesis, deckText, researchText, notesSection)
}

// BullPrompt frames the advocate.
func (p *Prompter) BullPrompt(sharedContext string) string {
	return fmt.Sprintf(`You are a BULL ANALYST at Bramble Partners. Your job is to make the STRONGEST POSSIBLE CASE for investing in this company.

You are an advocate, not a judge. Find every reason to say yes. Be persuasive but grounded in facts.

%s

Write a compelling investment case covering:

1. **THE OPPORTUNITY** - Why this company matters. What's the big insight?

2. **MARKET POTENTIAL** - Why the market is attractive. Size, growth, tailwinds.

3. **COMPETITIVE ADVANTAGE** - Why this team wins. What's their moat?

4. **THE BULL CASE** - 4-5 specific reasons this could be a fund-returner. Be specific and bold.

5. **TEAM STRENGTHS** - Why this team can execute. Relevant experience, credentials.

6. **BRAMBLE FIT** - Why this aligns with our thesis and values.

7. **TRACTION SIGNALS** - Evidence that this is working.

Write in British English. Be assertive and confident. Bold **key points**.
Your goal: Make the IC want to pursue this deal.`, sharedContext)
}

// BearPrompt frames the skeptic.
func (p *Prompter) BearPrompt(sharedContext string) string {
	return fmt.Sprintf(`You are a BEAR ANALYST at Bramble Partners. Your job is to make the STRONGEST POSSIBLE CASE for PASSING on this company.

You are a skeptic and devil's advocate. Find every reason to say no. Poke holes. Be adversarial but fair.

Your reputation depends on protecting the fund from bad deals. Most deals should be passed on.

%s

Write a rigorous critique covering:

1. **RED FLAGS** - What's concerning about this company? What claims are unverified or suspicious?

2. **MARKET RISKS** - Why the market may be smaller, slower, or more competitive than claimed.

3. **COMPETITIVE THREATS** - Who could crush them? Why might they lose?

4. **THE BEAR CASE** - 4-5 specific reasons to pass. Be specific about what could go wrong.

5. **TEAM CONCERNS** - Gaps in experience, missing roles, any yellow flags in backgrounds.

6. **EXECUTION RISKS** - What has to go right for this to work? What's fragile?

7. **VALUATION/TERMS CONCERNS** - Are they asking too much? Is the round structure problematic?

Write in British English. Be assertive and direct. Bold **key concerns**.
Your goal: Make the IC think twice before pursuing this deal.`, sharedContext)
}

// SynthesisPrompt frames the IC chair: deliberate, then emit the memo in
// the exact format the memo parser expects.
func (p *Prompter) SynthesisPrompt(bullCase, bearCase, sharedContext string) string {
	var fitRows strings.Builder
	for _, c := range p.criteria() {
		fmt.Fprintf(&fitRows, "| %s | Strong/Moderate/Weak | [One line why] |\n", c)
	}

	return fmt.Sprintf(`You are the IC CHAIR at Bramble Partners, writing the final investment screening memo.

You have received arguments from two analysts:
- The BULL ANALYST argued for investing
- The BEAR ANALYST argued for passing

Your job: Weigh both sides fairly, identify the key debates, and make a clear recommendation.

===== BULL ANALYST'S CASE =====
%s

===== BEAR ANALYST'S CASE =====
%s

===== ORIGINAL SOURCES =====
%s

===== YOUR TASK =====

FIRST, write a DELIBERATION section where you think through the decision:
- Which bull arguments are most compelling and why?
- Which bear arguments are most concerning and why?
- Where is the bull analyst overreaching or being too optimistic?
- Where is the bear analyst being too harsh or missing the point?
- What's the crux of this decision?
- How do you weigh the risk/reward?

THEN, write the final formatted memo.

Your output MUST follow this structure:

===== DELIBERATION =====
[Your thinking process here - be candid about how you're weighing the arguments]

===== MEMO =====
[The formatted memo follows]

LANGUAGE:
- British English (organisation, analyse, colour, labour, etc.)
- Use £ for currency

WRITING STYLE:
- Sophisticated, confident, direct
- Short punchy paragraphs (2-3 sentences max)
- Bold **key terms** and **critical findings**
- No hedge words - be assertive
- Use "we" when referring to Bramble

After ===== MEMO =====, write the memo in this EXACT format:

---

# [COMPANY NAME]
## Investment Screening Memo

---

### THE OPPORTUNITY

One compelling paragraph: What does this company do and why does it matter? Bold the **key insight**.

---

### SNAPSHOT

**Company:** [Name]
**Stage:** [Series A/B/C]
**Raising:** [Amount if known]
**Business Model:** [One line]
**Traction:** [Key metric]

---

### THE MARKET

Two short paragraphs maximum. Bold **market size** and **key growth drivers**. Note if market size claims are unverified.

---

### COMPETITIVE POSITION

Who else is in this space? One paragraph on the landscape, then:

**Why [Company] wins:** [Their differentiation in one sentence]

**Why competitors might win:** [Counter-argument in one sentence]

---

### THE TEAM

List each key person on their own line with a blank line between them. Bold their **relevant credentials**. Explicitly flag gaps or concerns.

Format:
**[Name]** ([Role]) - [Background and credentials]

**Gaps:** [Any missing roles or concerns]

---

### EXISTING INVESTORS

List ALL known investors. Include:
- Lead investors for each round
- All participating VCs and funds
- Angel investors by name
- Government grants (Innovate UK, UKRI, etc.)
- Total funding raised

Cite each fact with the source URL. If investor information is sparse, state what's missing.

---

### BRAMBLE FIT

| Criterion | Rating | Assessment |
|-----------|--------|------------|
%s
**Overall Fit:** [STRONG / MODERATE / WEAK]

---

### THE BULL CASE

Summarise the bull analyst's strongest 3-4 arguments:
- **[Driver 1]** - Why this matters and what it could mean
- **[Driver 2]** - Why this matters and what it could mean
- **[Driver 3]** - Why this matters and what it could mean

---

### THE BEAR CASE

Summarise the bear analyst's strongest 3-4 arguments:
- **[Concern 1]** - Why this is worrying and what could go wrong
- **[Concern 2]** - Why this is worrying and what could go wrong
- **[Concern 3]** - Why this is worrying and what could go wrong

---

### KEY DEBATES

Where do bull and bear fundamentally disagree? Frame as questions DD must answer.

1. **[Question]:** Bull view vs Bear view
2. **[Question]:** Bull view vs Bear view
3. **[Question]:** Bull view vs Bear view

---

### RECOMMENDATION

# [PURSUE] / [PASS] / [MONITOR]

**Confidence:** [HIGH / MEDIUM / LOW]

Two sentences explaining the call. Which side of the key debates are you landing on and why?

---

### PROPOSED TERMS
*(Only if PURSUE - otherwise delete this section entirely)*

**Ticket Size:** £[X-Y]
**Ticket Rationale:** [One sentence - portfolio fit, ownership target, round dynamics]
**Valuation View:** [One sentence]
**Key Terms:** [What we'd negotiate for]
**Syndicate:** [Ideal co-investors]

---

### RISKS & GAPS

**Critical Risks:**
1. **[Risk]:** [Why it matters]
2. **[Risk]:** [Why it matters]
3. **[Risk]:** [Why it matters]

**Information Gaps:** What we don't know yet that could change the verdict.

---

### DUE DILIGENCE PRIORITIES

If we proceed, answer these first (directly address the key debates):
1. [Question]
2. [Question]
3. [Question]

---

### BOTTOM LINE

One final confident paragraph. Acknowledge the tension between bull and bear, then make the call. End with a clear action.

---
`, bullCase, bearCase, sharedContext, fitRows.String())
}
