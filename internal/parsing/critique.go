package parsing

import (
	"github.com/jonathan/star-refiner/internal/extract"
	"github.com/jonathan/star-refiner/internal/types"
)

const (
	minRating = 0.0
	maxRating = 5.0
)

// unparseableSuggestion is the single suggestion a totally unparseable
// critique carries, so downstream consumers still see a populated list.
const unparseableSuggestion = "Unable to parse critique"

// ParseCritique parses raw critique output into a Critique. Same recovery
// policy as ParseSTARAnswer; on total failure the rating defaults to 0.0,
// which fails any sensible threshold and drives another refinement pass
// instead of surfacing an error.
func ParseCritique(raw string) types.Critique {
	candidate := extract.JSONCandidate(raw)

	if fields, ok := decodeObject(candidate); ok {
		return critiqueFromFields(fields, raw)
	}

	repaired := extract.RepairJSON(candidate)
	if fields, ok := decodeObject(repaired); ok {
		return critiqueFromFields(fields, raw)
	}

	return types.Critique{
		Rating:      0.0,
		Suggestions: []string{unparseableSuggestion},
		RawText:     raw,
	}
}

func critiqueFromFields(fields map[string]any, raw string) types.Critique {
	rating, ratingOK := coerceRating(fields["rating"])

	c := types.Critique{
		Rating:                     rating,
		Suggestions:                coerceSuggestions(fields["suggestions"]),
		StructureFeedback:          coerceString(fields["structure_feedback"]),
		RelevanceFeedback:          coerceString(fields["relevance_feedback"]),
		SpecificityFeedback:        coerceString(fields["specificity_feedback"]),
		ProfessionalImpactFeedback: coerceString(fields["professional_impact_feedback"]),
	}

	// Keep the raw text around whenever the rating needed clamping or was
	// missing entirely, so inconsistent self-grading stays inspectable.
	if !ratingOK {
		c.RawText = raw
	}

	return c
}

// coerceRating converts a decoded JSON value to a rating in [0.0, 5.0].
// Out-of-range and non-numeric values clamp to 0.0; the second return value
// reports whether the original was usable as-is.
func coerceRating(v any) (float64, bool) {
	f, ok := v.(float64) // encoding/json decodes every JSON number as float64
	if !ok {
		return 0.0, false
	}
	if f < minRating || f > maxRating {
		return 0.0, false
	}
	return f, true
}

// coerceSuggestions converts a decoded JSON value to a list of strings.
// A non-list value becomes a single-element list; nil becomes empty.
func coerceSuggestions(v any) []string {
	switch items := v.(type) {
	case nil:
		return []string{}
	case []any:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s := coerceString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{coerceString(items)}
	}
}
