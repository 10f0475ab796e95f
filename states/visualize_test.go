package states

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestExportDOT(t *testing.T) {
	c, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatal(err)
	}

	dot := ExportDOT(c, "running")
	for _, want := range []string{
		"digraph Switch {",
		"start [shape=point]",
		`start -> "idle"`,
		`"idle" -> "running"`,
		`"running" -> "done"`,
		"requires: warm",
		"fillcolor=lightgreen",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
}

func TestExportDOTUnrestrictedState(t *testing.T) {
	c := Config{
		ID:      "sw",
		Initial: "free",
		States:  map[string]StateConfig{"free": {}},
	}
	dot := ExportDOT(c, "")
	if !strings.Contains(dot, `"free" -> "free" [label="any" style=dashed]`) {
		t.Errorf("unrestricted state should render a dashed any-loop:\n%s", dot)
	}
	if strings.Contains(dot, "lightgreen") {
		t.Error("no highlight expected when current is empty")
	}
}

func TestExportDOTStableOrder(t *testing.T) {
	c, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatal(err)
	}
	first := ExportDOT(c, "")
	for i := 0; i < 10; i++ {
		if got := ExportDOT(c, ""); got != first {
			t.Fatal("DOT output should be deterministic across calls")
		}
	}
}

func TestExportJSON(t *testing.T) {
	c, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatal(err)
	}
	data, err := ExportJSON(c)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var back Config
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if back.ID != c.ID || back.Initial != c.Initial || len(back.States) != len(c.States) {
		t.Errorf("round trip mismatch: %+v", back)
	}
}
