package planner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"bindery/internal/author"
	"bindery/internal/hints"
	"bindery/internal/inventory"
	"bindery/internal/manifest"
	"bindery/internal/textutil"
)

// Reason codes recorded per manifest entry.
const (
	ReasonIllegalCharsFixed     = "illegal_chars_fixed"
	ReasonAuthorFromAlias       = "author_from_alias"
	ReasonAuthorUnknownFallback = "author_unknown_fallback"
	ReasonPredictedCollision    = "predicted_collision"
)

// AuthorMapping records how one raw author string resolved.
type AuthorMapping struct {
	Raw       string
	Canonical string
	Source    string
}

// Collision is a target path predicted to be produced by more than one
// source file. Resolution happens at execution time via suffixing; the
// planner only reports.
type Collision struct {
	TargetPath string
	Sources    []string
}

// Plan is the full side-effect-free output of the planning phase.
type Plan struct {
	Entries    []manifest.Entry
	Authors    []AuthorMapping
	Collisions []Collision
}

// Build computes the source→target mapping for every raw entry. Pure: it
// reads nothing from disk and mutates nothing.
func Build(entries []inventory.Entry, aliases map[string]string, libraryRoot string) Plan {
	var plan Plan
	seenTargets := map[string][]string{}
	authorSeen := map[string]AuthorMapping{}

	for _, raw := range entries {
		var reasons []string

		canonical, source := resolveAuthor(raw, aliases)
		switch source {
		case "alias":
			reasons = append(reasons, ReasonAuthorFromAlias)
		case "":
			reasons = append(reasons, ReasonAuthorUnknownFallback)
		default:
			reasons = append(reasons, "author_from_"+source)
		}

		base := filepath.Base(raw.SourcePath)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		safeStem := textutil.SafeNameOr(stem, "Untitled")
		// Whitespace collapse and unicode recomposition also change the stem;
		// the reason code is reserved for actual forbidden characters.
		if safeStem != stem && textutil.HasForbidden(stem) {
			reasons = append(reasons, ReasonIllegalCharsFixed)
		}
		fileName := safeStem + raw.Extension
		target := filepath.Join(libraryRoot, canonical, fileName)

		lowered := strings.ToLower(target)
		if prior := seenTargets[lowered]; len(prior) > 0 {
			reasons = append(reasons, ReasonPredictedCollision)
		}
		seenTargets[lowered] = append(seenTargets[lowered], raw.SourcePath)

		if raw.AuthorHint != "" {
			if _, ok := authorSeen[raw.AuthorHint]; !ok {
				authorSeen[raw.AuthorHint] = AuthorMapping{
					Raw:       raw.AuthorHint,
					Canonical: canonical,
					Source:    source,
				}
			}
		}

		plan.Entries = append(plan.Entries, manifest.Entry{
			SourcePath: raw.SourcePath,
			TargetPath: target,
			Author:     canonical,
			Reasons:    reasons,
		})
	}

	for _, mapping := range authorSeen {
		plan.Authors = append(plan.Authors, mapping)
	}
	sort.Slice(plan.Authors, func(i, j int) bool {
		return plan.Authors[i].Raw < plan.Authors[j].Raw
	})

	targets := make([]string, 0, len(seenTargets))
	for target, sources := range seenTargets {
		if len(sources) > 1 {
			targets = append(targets, target)
		}
	}
	sort.Strings(targets)
	for _, target := range targets {
		sources := seenTargets[target]
		sort.Strings(sources)
		plan.Collisions = append(plan.Collisions, Collision{TargetPath: target, Sources: sources})
	}

	return plan
}

// resolveAuthor picks the canonical author for one raw entry: alias lookup
// first, then canonicalized hint, then the unknown fallback. The returned
// source feeds the reason code.
func resolveAuthor(raw inventory.Entry, aliases map[string]string) (canonical, source string) {
	hint := strings.TrimSpace(raw.AuthorHint)
	if hint != "" {
		if forced, ok := aliases[hint]; ok {
			return author.Canonicalize(forced), "alias"
		}
		src := raw.HintSource
		if src == "" {
			src = hints.SourceFilename
		}
		return author.Canonicalize(hint), src
	}
	return author.Unknown, ""
}

// LoadAliases reads an optional JSON object of raw→canonical overrides. A
// missing file is not an error: the alias table is opt-in.
func LoadAliases(path string) (map[string]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read alias table: %w", err)
	}
	aliases := map[string]string{}
	if err := json.Unmarshal(data, &aliases); err != nil {
		return nil, fmt.Errorf("decode alias table %s: %w", path, err)
	}
	return aliases, nil
}
