// Package parsing converts loosely structured LLM output into the typed
// answer and critique values the workflow operates on. Both parsers are
// total: any input, including empty strings and non-JSON prose, yields a
// populated value, so the orchestrator never branches on a parse failure.
package parsing

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/star-refiner/internal/extract"
	"github.com/jonathan/star-refiner/internal/types"
)

const (
	// sentinelPrefixLen bounds how much raw text the fallback answer carries.
	sentinelPrefixLen = 200
	// maxCoercedLen bounds string conversion of non-string JSON values so a
	// pathological payload cannot balloon a diagnostic field.
	maxCoercedLen = 2000
)

// ParseSTARAnswer parses raw generator or refiner output into a STARAnswer.
// The decode pipeline is fence-strip, JSON decode, repair-and-retry once,
// then a sentinel whose Situation field carries a truncated prefix of the
// raw text. All four fields are always populated strings.
func ParseSTARAnswer(raw string) types.STARAnswer {
	candidate := extract.JSONCandidate(raw)

	if fields, ok := decodeObject(candidate); ok {
		return AnswerFromFields(fields)
	}

	repaired := extract.RepairJSON(candidate)
	if fields, ok := decodeObject(repaired); ok {
		return AnswerFromFields(fields)
	}

	return types.STARAnswer{Situation: truncate(raw, sentinelPrefixLen)}
}

// AnswerFromFields coerces an already-decoded JSON object into a STARAnswer.
// Missing keys become empty strings; non-string values are stringified and
// truncated for diagnostic display.
func AnswerFromFields(fields map[string]any) types.STARAnswer {
	return types.STARAnswer{
		Situation: coerceString(fields["situation"]),
		Task:      coerceString(fields["task"]),
		Action:    coerceString(fields["action"]),
		Result:    coerceString(fields["result"]),
	}
}

func decodeObject(text string) (map[string]any, bool) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, false
	}
	return fields, true
}

func coerceString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return truncate(fmt.Sprint(s), maxCoercedLen)
	}
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n]
}
