package states

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ExportDOT generates Graphviz DOT source for a switch configuration.
// current, if non-empty, highlights the active state. Explicit Allowed
// edges are drawn as arrows; a state with no Allowed list may move anywhere,
// rendered as a dashed self-loop labelled "any".
func ExportDOT(config Config, current string) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Switch {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, fontsize=10, style=rounded];\n")
	buf.WriteString("  edge [fontsize=9];\n")

	names := sortedStateNames(config)

	// Entry arrow into the initial state.
	buf.WriteString("  start [shape=point];\n")
	fmt.Fprintf(&buf, "  start -> %q;\n", config.Initial)

	for _, name := range names {
		state := config.States[name]
		label := name
		if len(state.Requires) > 0 {
			label = fmt.Sprintf("%s\\nrequires: %s", name, strings.Join(state.Requires, ", "))
		}
		attrs := fmt.Sprintf("label=\"%s\"", label)
		if name == current {
			attrs += " style=\"rounded,filled\" fillcolor=lightgreen"
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", name, attrs)
	}

	for _, name := range names {
		state := config.States[name]
		if len(state.Allowed) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q [label=\"any\" style=dashed];\n", name, name)
			continue
		}
		for _, target := range state.Allowed {
			fmt.Fprintf(&buf, "  %q -> %q;\n", name, target)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ExportJSON serializes the switch config to indented JSON.
func ExportJSON(config Config) ([]byte, error) {
	return json.MarshalIndent(config, "", "  ")
}

// sortedStateNames returns the state names in stable order so exports are
// diffable.
func sortedStateNames(config Config) []string {
	names := make([]string, 0, len(config.States))
	for name := range config.States {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
