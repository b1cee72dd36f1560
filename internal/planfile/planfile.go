// Package planfile loads plans from YAML/JSON documents and planner text output.
package planfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/drew/planview/internal/model"
)

// ErrUnsupportedFormat is returned for file extensions no loader handles
var ErrUnsupportedFormat = errors.New("unsupported plan file format")

// ErrNoPlans is returned when a file decodes to zero plans
var ErrNoPlans = errors.New("no plans found")

// ParseError reports a malformed line in a planner text file
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Load reads every plan in path. YAML files may hold several documents,
// one plan each.
func Load(path string) ([]*model.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var plans []*model.Plan
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml", ".json":
		plans, err = Decode(bytes.NewReader(data))
	case ".plan", ".txt", ".pddl":
		var plan *model.Plan
		plan, err = ParseText(bytes.NewReader(data))
		if plan != nil {
			plans = []*model.Plan{plan}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse plan %s: %w", path, err)
	}
	return plans, nil
}

// Decode reads a stream of YAML documents, each describing one plan.
// JSON is accepted as a YAML subset.
func Decode(r io.Reader) ([]*model.Plan, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var plans []*model.Plan
	for {
		var plan model.Plan
		err := dec.Decode(&plan)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		normalize(&plan)
		plans = append(plans, &plan)
	}

	if len(plans) == 0 {
		return nil, ErrNoPlans
	}
	return plans, nil
}

// normalize fills the fields a plan document may leave out
func normalize(plan *model.Plan) {
	for i := range plan.Steps {
		if plan.Steps[i].Iterations < 1 {
			plan.Steps[i].Iterations = 1
		}
	}
	if plan.Makespan == 0 {
		plan.Makespan = plan.ComputeMakespan()
	}
}
