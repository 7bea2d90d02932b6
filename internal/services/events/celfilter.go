package eventsvc

import (
	"strings"
	"time"

	"github.com/google/cel-go/cel"

	"github.com/NEARFoundation/events-platform/internal/entity"
	"github.com/NEARFoundation/events-platform/internal/fault"
)

// celFilter wraps a compiled CEL program used by GetAllEvents to narrow the
// full scan server-side. When disabled, Eval always returns true.
type celFilter struct {
	prog    cel.Program
	enabled bool
}

func newCELFilter(expr string) (celFilter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return celFilter{enabled: false}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("name", cel.StringType),
		cel.Variable("category", cel.StringType),
		cel.Variable("status", cel.StringType),
		cel.Variable("event_type", cel.StringType),
		cel.Variable("location", cel.StringType),
		cel.Variable("owner", cel.StringType),
		// Schedule bounds as unix millis for windowed filters
		cel.Variable("start_ms", cel.IntType),
		cel.Variable("end_ms", cel.IntType),
		cel.Variable("now_ms", cel.IntType),
	)
	if err != nil {
		return celFilter{}, err
	}
	ast, iss := env.Parse(expr)
	if iss != nil && iss.Err() != nil {
		return celFilter{}, fault.InvalidArgument("bad filter expression: %v", iss.Err())
	}
	checked, iss2 := env.Check(ast)
	if iss2 != nil && iss2.Err() != nil {
		return celFilter{}, fault.InvalidArgument("bad filter expression: %v", iss2.Err())
	}
	prog, err := env.Program(checked)
	if err != nil {
		return celFilter{}, err
	}
	return celFilter{prog: prog, enabled: true}, nil
}

// Eval evaluates the compiled expression against an event. When disabled,
// returns true. Evaluation errors exclude the record rather than failing the
// whole scan.
func (f celFilter) Eval(ev entity.Event) bool {
	if !f.enabled {
		return true
	}
	out, _, err := f.prog.Eval(map[string]any{
		"name":       ev.Name,
		"category":   ev.Category,
		"status":     string(ev.Status),
		"event_type": string(ev.Type),
		"location":   ev.Location,
		"owner":      ev.Owner,
		"start_ms":   ev.StartDate.UnixMilli(),
		"end_ms":     ev.EndDate.UnixMilli(),
		"now_ms":     time.Now().UnixMilli(),
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}
