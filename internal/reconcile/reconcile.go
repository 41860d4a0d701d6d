package reconcile

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-studio/internal/types"
)

// Outcome reports whether an accepted suggestion changed the document
type Outcome struct {
	Applied bool                `json:"applied"`
	Miss    *ReconciliationMiss `json:"miss,omitempty"`
}

func miss(s types.Suggestion, format string, args ...any) Outcome {
	return Outcome{Miss: &ReconciliationMiss{
		SuggestionID: s.ID,
		Type:         s.Type,
		TargetID:     s.TargetID,
		Reason:       fmt.Sprintf(format, args...),
	}}
}

// Accept applies s to a copy of doc and returns the copy. doc is never modified.
// When the suggestion cannot be applied the copy equals doc and the outcome carries the miss.
func Accept(doc *types.ResumeDocument, s types.Suggestion) (types.ResumeDocument, Outcome) {
	updated := doc.Clone()

	var outcome Outcome
	switch s.Type {
	case types.SuggestionSummary:
		outcome = applySummary(&updated, s)
	case types.SuggestionExperience:
		outcome = applyExperience(&updated, s)
	case types.SuggestionSkill:
		outcome = applySkill(&updated, s)
	case types.SuggestionSkillReorg:
		outcome = applySkillReorg(&updated, s)
	default:
		outcome = miss(s, "unknown suggestion type %q", s.Type)
	}

	if !outcome.Applied {
		return doc.Clone(), outcome
	}
	return updated, outcome
}

func applySummary(doc *types.ResumeDocument, s types.Suggestion) Outcome {
	if s.Suggested.Kind != types.SuggestedText {
		return miss(s, "summary suggestion must carry text")
	}
	doc.Summary = s.Suggested.Text
	return Outcome{Applied: true}
}

func applyExperience(doc *types.ResumeDocument, s types.Suggestion) Outcome {
	if s.Suggested.Kind != types.SuggestedText {
		return miss(s, "experience suggestion must carry text")
	}
	for i := range doc.Experience {
		exp := &doc.Experience[i]
		if exp.ID != s.TargetID {
			continue
		}
		idx := MatchBullet(exp.BulletPoints, s.Original)
		if idx < 0 {
			return miss(s, "no bullet in %s matches the original text", exp.ID)
		}
		exp.BulletPoints[idx] = s.Suggested.Text
		return Outcome{Applied: true}
	}
	return miss(s, "no experience entry with id %q", s.TargetID)
}

func applySkill(doc *types.ResumeDocument, s types.Suggestion) Outcome {
	if s.Suggested.Kind != types.SuggestedList && !s.Suggested.IsEmptyList() {
		return miss(s, "skill suggestion must carry a list of skills")
	}
	for i := range doc.Skills.Categorized {
		category := &doc.Skills.Categorized[i]
		if category.ID != s.TargetID {
			continue
		}
		category.Skills = AppendMissing(category.Skills, s.Suggested.List)
		return Outcome{Applied: true}
	}
	return miss(s, "no skill category with id %q", s.TargetID)
}

func applySkillReorg(doc *types.ResumeDocument, s types.Suggestion) Outcome {
	if s.Suggested.Kind != types.SuggestedCategories && !s.Suggested.IsEmptyList() {
		return miss(s, "skill_reorg suggestion must carry a list of categories")
	}
	doc.Skills.Categorized = types.CloneCategories(s.Suggested.Categories)
	if doc.Skills.Categorized == nil {
		doc.Skills.Categorized = []types.SkillCategory{}
	}
	return Outcome{Applied: true}
}

// AppendMissing appends every value of add not already present in existing,
// keeping existing order. Repeats within add are also dropped, so each new
// value is appended once. Comparison is exact.
func AppendMissing(existing, add []string) []string {
	seen := make(map[string]bool, len(existing)+len(add))
	out := make([]string, 0, len(existing)+len(add))
	for _, v := range existing {
		seen[v] = true
		out = append(out, v)
	}
	for _, v := range add {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Normalize collapses whitespace runs to one space, trims and lowercases
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// MatchBullet returns the index of the bullet that original refers to, or -1.
// An exact match wins; otherwise the first bullet whose normalized text contains,
// or is contained in, the normalized original. Empty text never matches.
func MatchBullet(bullets []string, original string) int {
	if original == "" {
		return -1
	}
	for i, b := range bullets {
		if b == original {
			return i
		}
	}

	want := Normalize(original)
	if want == "" {
		return -1
	}
	for i, b := range bullets {
		got := Normalize(b)
		if got == "" {
			continue
		}
		if strings.Contains(want, got) || strings.Contains(got, want) {
			return i
		}
	}
	return -1
}
