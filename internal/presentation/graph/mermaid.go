package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/runner"
)

// TraceOverlay highlights states on a trace diagram.
type TraceOverlay struct {
	// Rejected marks a path that a deterministic engine refused.
	Rejected string
}

// GenerateMermaid produces a Mermaid flowchart of a walk, one node per distinct
// state and one edge per transition between consecutive steps.
// It applies semantic styling:
// - Entry: ((Circle))
// - Last: [[Subroutine]]
// - Default: [Rectangle]
// Repeated transitions between the same states are labeled with their step numbers.
func GenerateMermaid(steps []runner.Step, overlay *TraceOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	if len(steps) == 0 {
		return sb.String()
	}

	declared := make(map[string]bool)
	last := steps[len(steps)-1].State
	for i, step := range steps {
		safeID := sanitizeMermaidID(step.State)
		if declared[safeID] {
			continue
		}
		declared[safeID] = true

		opener, closer := "[", "]"
		switch {
		case i == 0:
			opener, closer = "((", "))"
		case step.State == last:
			opener, closer = "[[", "]]"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(step.State), closer))
	}

	type edge struct{ from, to string }
	var order []edge
	labels := make(map[edge][]string)
	for i := 1; i < len(steps); i++ {
		e := edge{sanitizeMermaidID(steps[i-1].State), sanitizeMermaidID(steps[i].State)}
		if _, ok := labels[e]; !ok {
			order = append(order, e)
		}
		labels[e] = append(labels[e], fmt.Sprint(steps[i].Index))
	}
	for _, e := range order {
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", e.from, strings.Join(labels[e], ","), e.to))
	}

	if overlay != nil && overlay.Rejected != "" {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds
		sb.WriteString("    classDef rejected fill:#fee2e2,stroke:#b91c1c,stroke-width:2px,color:#000;\n")
		rejected := "rejected_" + sanitizeMermaidID(overlay.Rejected)
		sb.WriteString(fmt.Sprintf("    %s{{\"%s\"}}\n", rejected, escapeLabel(overlay.Rejected)))
		sb.WriteString(fmt.Sprintf("    %s -. replay .-> %s\n", sanitizeMermaidID(last), rejected))
		sb.WriteString(fmt.Sprintf("    class %s rejected;\n", rejected))
	}

	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	var sb strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}
