// Package skills aggregates skill demand across saved job applications.
package skills

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-studio/internal/types"
)

// Count is how many saved applications asked for one skill
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Normalize is the aggregation key for a skill name
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Aggregate counts skills across applications. Names are compared after Normalize;
// a skill listed twice in one application counts once for it. Results are sorted by
// count, highest first, then by name.
func Aggregate(applications [][]string) []Count {
	counts := make(map[string]int)
	for _, list := range applications {
		seen := make(map[string]bool, len(list))
		for _, raw := range list {
			name := Normalize(raw)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			counts[name]++
		}
	}

	out := make([]Count, 0, len(counts))
	for name, n := range counts {
		out = append(out, Count{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Top returns at most n entries. A non-positive n returns everything.
func Top(counts []Count, n int) []Count {
	if n <= 0 || n >= len(counts) {
		return counts
	}
	return counts[:n]
}

// Gap compares the skills a job asks for with the skills on a resume
type Gap struct {
	Present []string `json:"present"`
	Missing []string `json:"missing"`
}

// ResumeSkills returns every skill on the document, from both skill modes and
// project technologies, in first-seen order
func ResumeSkills(doc *types.ResumeDocument) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(s string) {
		key := Normalize(s)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, strings.TrimSpace(s))
	}
	for _, s := range doc.Skills.Simple {
		add(s)
	}
	for _, c := range doc.Skills.Categorized {
		for _, s := range c.Skills {
			add(s)
		}
	}
	for _, p := range doc.Projects {
		for _, s := range p.Technologies {
			add(s)
		}
	}
	return out
}

// FindGap splits the job's skills into those the resume already lists and those it lacks
func FindGap(doc *types.ResumeDocument, jobSkills []string) Gap {
	have := make(map[string]bool)
	for _, s := range ResumeSkills(doc) {
		have[Normalize(s)] = true
	}

	gap := Gap{Present: []string{}, Missing: []string{}}
	seen := make(map[string]bool)
	for _, s := range jobSkills {
		key := Normalize(s)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if have[key] {
			gap.Present = append(gap.Present, strings.TrimSpace(s))
		} else {
			gap.Missing = append(gap.Missing, strings.TrimSpace(s))
		}
	}
	return gap
}
