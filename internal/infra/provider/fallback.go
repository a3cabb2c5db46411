package provider

import (
	"math/rand"
	"regexp"
	"strings"

	"newscurator/internal/domain/entity"
)

// EmergencySource tags summaries produced by the local template generator.
// They are synthesized, never genuine external-AI output, and the tag keeps
// that distinction visible to the caller.
const EmergencySource = "AI Emergency Fallback"

// EmergencyNote annotates every emergency result.
const EmergencyNote = "AI services temporarily unavailable - using advanced algorithm"

// sentencePattern matches one sentence including its terminating punctuation.
var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+`)

// emergencyTemplates are the fixed narrative frames the excerpt is embedded
// into. One is picked per request by the selector.
var emergencyTemplates = []func(excerpt string) string{
	func(excerpt string) string {
		return "Based on the health news analysis, " + excerpt +
			" This development represents significant progress in medical research and could influence future healthcare approaches. Patients should consult healthcare providers for personalized guidance."
	},
	func(excerpt string) string {
		return "Medical research indicates that " + strings.ToLower(excerpt) +
			" These findings contribute to our understanding of health optimization and disease prevention strategies. Further studies are needed to confirm these promising results."
	},
	func(excerpt string) string {
		return "Healthcare analysis reveals that " + strings.ToLower(excerpt) +
			" This information underscores the importance of evidence-based medical practices and regular health monitoring for optimal wellbeing."
	},
}

// TemplateSelector picks a template index given the number of templates.
// The default selector is uniformly random; tests inject a fixed selector to
// assert exact output composition.
type TemplateSelector func(n int) int

// Emergency generates a templated pseudo-summary entirely locally. It never
// fails, which is what guarantees the gateway contract "always returns
// something usable for display" even under total external outage.
type Emergency struct {
	selector TemplateSelector
}

// NewEmergency creates an emergency generator with uniformly random template
// selection.
func NewEmergency() *Emergency {
	return &Emergency{selector: rand.Intn}
}

// NewEmergencyWithSelector creates an emergency generator with an injected
// template selector.
func NewEmergencyWithSelector(selector TemplateSelector) *Emergency {
	return &Emergency{selector: selector}
}

// TemplateCount returns the number of available templates.
func TemplateCount() int {
	return len(emergencyTemplates)
}

// Excerpt extracts the lead of the text: the first one or two sentences
// (split on ., ! and ? retaining the delimiter), or the first 100 characters
// when no sentence boundary exists.
func Excerpt(text string) string {
	sentences := sentencePattern.FindAllString(text, 2)
	if len(sentences) == 0 {
		runes := []rune(text)
		if len(runes) > 100 {
			return string(runes[:100])
		}
		return text
	}
	return strings.Join(sentences, "")
}

// Generate synthesizes a pseudo-summary for the given text. Two calls with
// identical input may return different text (random template choice) but
// always embed the same extracted excerpt.
func (e *Emergency) Generate(text string) entity.SummaryResult {
	excerpt := Excerpt(text)
	template := emergencyTemplates[e.selector(len(emergencyTemplates))]
	return entity.SummaryResult{
		Summary: template(excerpt),
		Source:  EmergencySource,
		Note:    EmergencyNote,
	}
}
