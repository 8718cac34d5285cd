package export

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/pstuifzand/code-wave/internal/choreo"
	"github.com/pstuifzand/code-wave/internal/interest"
	"github.com/pstuifzand/code-wave/internal/model"
)

func testPlan() *choreo.Plan {
	deck := model.NewDeck("",
		model.NewBlock("", "x\na\nb"),
		model.NewBlock("", "a\nb\ny"))
	interest.Annotate(deck)
	return choreo.NewPlanner(choreo.DefaultTiming(), nil).Plan(deck.Block(0), deck.Block(1))
}

func TestWritePlanJSON(t *testing.T) {
	var sb strings.Builder
	if err := WritePlan(&sb, testPlan(), FormatJSON); err != nil {
		t.Fatalf("WritePlan failed: %v", err)
	}

	var doc planDoc
	if err := json.Unmarshal([]byte(sb.String()), &doc); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if doc.TotalMS != 1210 {
		t.Errorf("total_ms = %d, want 1210", doc.TotalMS)
	}
	if len(doc.Steps) != 4 {
		t.Fatalf("Expected 4 steps, got %d", len(doc.Steps))
	}
	first := doc.Steps[0]
	if first.Kind != "slide-out" || first.New != nil || first.Old == nil || *first.Old != 0 {
		t.Errorf("Unexpected first step %+v", first)
	}
	if doc.Steps[1].Motion != "linear" {
		t.Errorf("Expected linear motion on a move, got %q", doc.Steps[1].Motion)
	}
}

func TestWritePlanYAML(t *testing.T) {
	var sb strings.Builder
	if err := WritePlan(&sb, testPlan(), FormatYAML); err != nil {
		t.Fatalf("WritePlan failed: %v", err)
	}

	var doc planDoc
	if err := yaml.Unmarshal([]byte(sb.String()), &doc); err != nil {
		t.Fatalf("Invalid YAML: %v", err)
	}
	if doc.From != 0 || doc.To != 1 || !doc.Forward {
		t.Errorf("Unexpected header %+v", doc)
	}
	if doc.Inserted != 1 || doc.Deleted != 1 || doc.Moved != 2 {
		t.Errorf("Unexpected counts %+v", doc)
	}
}

func TestWritePlanText(t *testing.T) {
	var sb strings.Builder
	if err := WritePlan(&sb, testPlan(), FormatText); err != nil {
		t.Fatalf("WritePlan failed: %v", err)
	}

	out := sb.String()
	for _, want := range []string{
		"Transition 0 -> 1 (forward), total 1210ms",
		"1 inserted, 1 deleted, 2 moved",
		"slide-out",
		"from-end",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Text output missing %q:\n%s", want, out)
		}
	}
}

func TestWritePlanUnknownFormat(t *testing.T) {
	if err := WritePlan(&strings.Builder{}, testPlan(), "xml"); err == nil {
		t.Error("Expected error for unknown format")
	}
}
