package analyzer

import (
	"math"
	"path"
	"sort"

	"github.com/go-enry/go-enry/v2"
	"github.com/railwayapp/stackgen/internal/detection"
)

// LanguageShare is the portion of a project's source files written in one
// programming language.
type LanguageShare struct {
	Name    string  `json:"name" yaml:"name"`
	Files   int     `json:"files" yaml:"files"`
	Percent float64 `json:"percent" yaml:"percent"`
}

// Languages counts the scanned files by programming language. Markup,
// data and prose files are left out, as are vendored and generated paths.
func Languages(bundle *detection.EvidenceBundle) []LanguageShare {
	counts := make(map[string]int)
	total := 0
	for _, rel := range bundle.Files() {
		if enry.IsVendor(rel) || enry.IsDocumentation(rel) || enry.IsDotFile(rel) {
			continue
		}
		lang := languageOf(rel)
		if lang == "" {
			continue
		}
		counts[lang]++
		total++
	}

	shares := make([]LanguageShare, 0, len(counts))
	for name, n := range counts {
		percent := float64(n) * 100 / float64(total)
		shares = append(shares, LanguageShare{
			Name:    name,
			Files:   n,
			Percent: math.Round(percent*10) / 10,
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Files != shares[j].Files {
			return shares[i].Files > shares[j].Files
		}
		return shares[i].Name < shares[j].Name
	})
	return shares
}

// languageOf resolves ambiguous extensions to the first programming
// language candidate, so ".ts" counts as TypeScript rather than XML.
func languageOf(rel string) string {
	candidates := enry.GetLanguagesByFilename(path.Base(rel), nil, nil)
	if len(candidates) == 0 {
		candidates = enry.GetLanguagesByExtension(rel, nil, nil)
	}
	for _, lang := range candidates {
		if enry.GetLanguageType(lang) == enry.Programming {
			return lang
		}
	}
	return ""
}
