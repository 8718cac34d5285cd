package export

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pstuifzand/code-wave/internal/choreo"
	"github.com/pstuifzand/code-wave/internal/diff"
)

// Formats accepted by WritePlan
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type planDoc struct {
	From     int       `json:"from" yaml:"from"`
	To       int       `json:"to" yaml:"to"`
	Forward  bool      `json:"forward" yaml:"forward"`
	TotalMS  int64     `json:"total_ms" yaml:"total_ms"`
	Inserted int       `json:"inserted" yaml:"inserted"`
	Deleted  int       `json:"deleted" yaml:"deleted"`
	Moved    int       `json:"moved" yaml:"moved"`
	Interest []int     `json:"interest" yaml:"interest"`
	Steps    []stepDoc `json:"steps" yaml:"steps"`
}

type stepDoc struct {
	Old         *int    `json:"old" yaml:"old"`
	New         *int    `json:"new" yaml:"new"`
	Kind        string  `json:"kind" yaml:"kind"`
	Direction   string  `json:"direction,omitempty" yaml:"direction,omitempty"`
	DelayMS     int64   `json:"delay_ms" yaml:"delay_ms"`
	DurationMS  int64   `json:"duration_ms" yaml:"duration_ms"`
	FromOpacity float64 `json:"from_opacity" yaml:"from_opacity"`
	Opacity     float64 `json:"opacity" yaml:"opacity"`
	Offset      float64 `json:"offset,omitempty" yaml:"offset,omitempty"`
	Motion      string  `json:"motion,omitempty" yaml:"motion,omitempty"`
	Displaced   bool    `json:"displaced,omitempty" yaml:"displaced,omitempty"`
}

func index(i int) *int {
	if i == diff.None {
		return nil
	}
	return &i
}

func newPlanDoc(plan *choreo.Plan) planDoc {
	doc := planDoc{
		From:     plan.From,
		To:       plan.To,
		Forward:  plan.Forward,
		TotalMS:  plan.Total.Milliseconds(),
		Inserted: plan.Diff.InsertedCount,
		Deleted:  plan.Diff.DeletedCount,
		Moved:    plan.Diff.MovedCount(),
		Interest: plan.Interest.Indices(),
		Steps:    make([]stepDoc, len(plan.Steps)),
	}
	if doc.Interest == nil {
		doc.Interest = []int{}
	}
	for i, s := range plan.Steps {
		step := stepDoc{
			Old:         index(s.Pairing.OldIndex),
			New:         index(s.Pairing.NewIndex),
			Kind:        s.Kind.String(),
			DelayMS:     s.Delay.Milliseconds(),
			DurationMS:  s.Duration.Milliseconds(),
			FromOpacity: s.FromOpacity,
			Opacity:     s.Opacity,
			Offset:      s.Offset,
			Displaced:   s.Pairing.Displaced,
		}
		if s.Direction != choreo.DirectionNone {
			step.Direction = s.Direction.String()
		}
		if s.Motion != nil {
			step.Motion = s.Motion.Name()
		}
		doc.Steps[i] = step
	}
	return doc
}

// WritePlan writes a transition plan in the given format
func WritePlan(w io.Writer, plan *choreo.Plan, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(newPlanDoc(plan)); err != nil {
			return fmt.Errorf("failed to encode plan: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newPlanDoc(plan)); err != nil {
			return fmt.Errorf("failed to encode plan: %w", err)
		}
		return enc.Close()
	case FormatText, "":
		return writePlanText(w, plan)
	default:
		return fmt.Errorf("unknown plan format %q", format)
	}
}

func cell(i int) string {
	if i == diff.None {
		return "-"
	}
	return fmt.Sprint(i)
}

func ms(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}

func writePlanText(w io.Writer, plan *choreo.Plan) error {
	direction := "backward"
	if plan.Forward {
		direction = "forward"
	}
	fmt.Fprintf(w, "Transition %d -> %d (%s), total %s\n", plan.From, plan.To, direction, ms(plan.Total))
	fmt.Fprintf(w, "%s\n\n", diff.Summary(plan.Diff))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OLD\tNEW\tKIND\tDIRECTION\tDELAY\tDURATION\tOPACITY")
	for _, s := range plan.Steps {
		opacity := fmt.Sprintf("%.2f", s.Opacity)
		if s.Kind == choreo.KindSlideOut {
			opacity = fmt.Sprintf("%.2f", s.FromOpacity)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			cell(s.Pairing.OldIndex), cell(s.Pairing.NewIndex),
			s.Kind, s.Direction, ms(s.Delay), ms(s.Duration), opacity)
	}
	return tw.Flush()
}
