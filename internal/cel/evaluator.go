// Package cel filters suggestion catalogues with CEL predicates. Each
// suggestion is bound to "_" as {value, label, index}.
package cel

import (
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	celext "github.com/google/cel-go/ext"

	"github.com/oakwood-commons/suggest/pkg/suggest"
)

// ErrNotBool is returned when a predicate does not evaluate to a bool.
var ErrNotBool = errors.New("expression must evaluate to a bool")

// Evaluator compiles predicates against the suggestion environment.
type Evaluator struct {
	env *cel.Env
}

// Predicate is a compiled filter expression.
type Predicate struct {
	expr string
	prg  cel.Program
}

// NewEvaluator creates an evaluator with the string, list, math and
// encoder extensions enabled.
func NewEvaluator() (*Evaluator, error) {
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Evaluator{env: env}, nil
}

func newEnv(opts ...cel.EnvOption) (*cel.Env, error) {
	all := make([]cel.EnvOption, 0, 5+len(opts))
	all = append(all,
		cel.Variable("_", cel.MapType(cel.StringType, cel.DynType)),
		celext.Strings(),
		celext.Encoders(),
		celext.Lists(),
		celext.Math(),
	)
	all = append(all, opts...)
	return cel.NewEnv(all...)
}

// Compile parses and type-checks expr. Expressions whose type is known not
// to be bool are rejected here; dynamic results are checked per item.
func (e *Evaluator) Compile(expr string) (*Predicate, error) {
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	switch out := ast.OutputType(); out.Kind() {
	case types.BoolKind, types.DynKind, types.AnyKind:
	default:
		return nil, fmt.Errorf("%w, got %s", ErrNotBool, out)
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Predicate{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (p *Predicate) String() string {
	return p.expr
}

// Match evaluates the predicate for the suggestion at index.
func (p *Predicate) Match(s suggest.Suggestion, index int) (bool, error) {
	out, _, err := p.prg.Eval(map[string]any{"_": Binding(s, index)})
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	return asBool(out)
}

// Filter keeps the suggestions the predicate accepts, preserving order.
// Indexes refer to positions in the input list.
func (p *Predicate) Filter(items []suggest.Suggestion) ([]suggest.Suggestion, error) {
	out := make([]suggest.Suggestion, 0, len(items))
	for i, s := range items {
		ok, err := p.Match(s, i)
		if err != nil {
			return nil, fmt.Errorf("suggestion %d (%s): %w", i, s.DisplayLabel(), err)
		}
		if ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// Filter compiles expr and applies it to items. An empty expression keeps
// everything.
func Filter(expr string, items []suggest.Suggestion) ([]suggest.Suggestion, error) {
	if expr == "" {
		return items, nil
	}
	ev, err := NewEvaluator()
	if err != nil {
		return nil, err
	}
	pred, err := ev.Compile(expr)
	if err != nil {
		return nil, err
	}
	return pred.Filter(items)
}

// Binding is the value "_" takes for a suggestion. The label is always a
// string so expressions can call string functions on it.
func Binding(s suggest.Suggestion, index int) map[string]any {
	return map[string]any{
		"value": normalize(s.Value),
		"label": s.DisplayLabel(),
		"index": int64(index),
	}
}

// normalize widens numeric kinds to the ones CEL understands natively.
func normalize(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case uint:
		return uint64(n)
	case uint8:
		return uint64(n)
	case uint16:
		return uint64(n)
	case uint32:
		return uint64(n)
	case float32:
		return float64(n)
	case map[any]any:
		out := make(map[string]any, len(n))
		for k, val := range n {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	}
	return v
}

func asBool(val ref.Val) (bool, error) {
	if b, ok := val.(types.Bool); ok {
		return bool(b), nil
	}
	return false, fmt.Errorf("%w, got %s", ErrNotBool, val.Type().TypeName())
}
