package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/ecoguia/pkg/domain"
)

// GraphOverlay contains conversation data to highlight on the graph.
type GraphOverlay struct {
	VisitedNodes []string
	CurrentNode  string
}

// GenerateMermaid produces a Mermaid flowchart of the dialogue.
// Shapes follow the node type:
//   - Start: ((Circle))
//   - Menu: {{Hexagon}}
//   - Input: [/Parallelogram/]
//   - End: ([Stadium])
//   - Default: [Rectangle]
//
// Option edges carry the option label; dangling targets are drawn as red nodes.
func GenerateMermaid(nodes []domain.Node, startID string, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	known := make(map[string]bool, len(nodes))
	for _, node := range nodes {
		known[node.ID] = true
	}
	var missing []string
	edge := func(from, to, label string) {
		if !known[to] {
			known[to] = true
			missing = append(missing, to)
		}
		if label == "" {
			fmt.Fprintf(&sb, "    %s --> %s\n", sanitizeMermaidID(from), sanitizeMermaidID(to))
			return
		}
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", sanitizeMermaidID(from), escapeLabel(label), sanitizeMermaidID(to))
	}

	for _, node := range nodes {
		opener, closer := "[", "]"
		switch {
		case node.ID == startID:
			opener, closer = "((", "))"
		case node.Type == domain.NodeTypeMenu:
			opener, closer = "{{", "}}"
		case node.Type == domain.NodeTypeInput:
			opener, closer = "[/", "/]"
		case node.Type == domain.NodeTypeEnd:
			opener, closer = "([", "])"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", sanitizeMermaidID(node.ID), opener, escapeLabel(node.ID), closer)

		for _, opt := range node.Options {
			if opt.NextNodeID == "" {
				continue
			}
			label := opt.ID
			if opt.Label != "" {
				label = opt.ID + ": " + opt.Label
			}
			edge(node.ID, opt.NextNodeID, label)
		}
		if node.NextNodeID != "" && !node.IsChoice() && node.Type != domain.NodeTypeEnd {
			edge(node.ID, node.NextNodeID, "")
		}
	}

	if len(missing) > 0 {
		sb.WriteString("\n    %% Broken links\n")
		sb.WriteString("    classDef missing fill:#ffcdd2,stroke:#c62828,stroke-dasharray: 5 5,color:#000;\n")
		for _, id := range missing {
			fmt.Fprintf(&sb, "    %s[\"%s ?\"]\n", sanitizeMermaidID(id), escapeLabel(id))
			fmt.Fprintf(&sb, "    class %s missing;\n", sanitizeMermaidID(id))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedNodes {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}

		if overlay.CurrentNode != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.CurrentNode))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	s := b.String()
	// Mermaid reserves "end" as a keyword.
	if strings.EqualFold(s, "end") {
		s = "node_" + s
	}
	return s
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
