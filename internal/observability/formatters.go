// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/star-refiner/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxSuggestionsToShow is the number of critique suggestions to display
	maxSuggestionsToShow = 3
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSTARAnswer outputs a human-readable view of an answer.
func (p *Printer) PrintSTARAnswer(title string, answer types.STARAnswer) {
	var sb strings.Builder
	sb.WriteString("Situation:\n")
	sb.WriteString(wrap(answer.Situation))
	sb.WriteString("\nTask:\n")
	sb.WriteString(wrap(answer.Task))
	sb.WriteString("\nAction:\n")
	sb.WriteString(wrap(answer.Action))
	sb.WriteString("\nResult:\n")
	sb.WriteString(wrap(answer.Result))

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCritique outputs a critique's rating and top suggestions.
func (p *Printer) PrintCritique(iteration int, critique types.Critique) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Rating: %.1f / 5.0\n", critique.Rating))

	if len(critique.Suggestions) > 0 {
		sb.WriteString("\nSuggestions:\n")
		count := min(len(critique.Suggestions), maxSuggestionsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", critique.Suggestions[i]))
		}
		if len(critique.Suggestions) > maxSuggestionsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(critique.Suggestions)-maxSuggestionsToShow))
		}
	}

	p.printBox(fmt.Sprintf("CRITIQUE — ITERATION %d", iteration), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintOutcome outputs the terminal state of a run.
func (p *Printer) PrintOutcome(state types.WorkflowState) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Status:      %s\n", state.Status))
	sb.WriteString(fmt.Sprintf("Iterations:  %d\n", state.IterationsRun))
	if state.IterationsRun > 0 {
		sb.WriteString(fmt.Sprintf("Best rating: %.1f (iteration %d)\n", state.HighestRating, state.HighestIteration))
	}
	if state.ErrorMessage != "" {
		sb.WriteString(fmt.Sprintf("Error:       %s\n", state.ErrorMessage))
	}

	p.printBox("RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// wrap splits text into lines that fit inside the box.
func wrap(text string) string {
	const width = boxWidth - 6
	var sb strings.Builder
	line := ""
	for _, word := range strings.Fields(text) {
		if line != "" && len(line)+1+len(word) > width {
			sb.WriteString("  " + line + "\n")
			line = ""
		}
		if line != "" {
			line += " "
		}
		line += word
	}
	if line != "" {
		sb.WriteString("  " + line + "\n")
	}
	return sb.String()
}
