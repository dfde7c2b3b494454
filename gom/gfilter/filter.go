// Package gfilter selects export records with boolean expr-lang expressions,
// e.g. `fqn startsWith "abl.player." && hasField("ablCooldown")`.
package gfilter

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/pkg/errors"
	"github.com/thanhnguyen2187/gom-savior/gom/gnode"
	"github.com/thanhnguyen2187/gom-savior/gom/gvalue"
)

type (
	// Env is what an expression sees of one record.
	Env struct {
		ID        string `expr:"id"`
		FQN       string `expr:"fqn"`
		Path      string `expr:"path"`
		FileName  string `expr:"fileName"`
		NumFields int    `expr:"numFields"`

		HasField func(id string) bool `expr:"hasField"`
		// Field gives the untagged value of a field, or nil when it is absent.
		Field func(id string) any `expr:"field"`
	}
	Filter struct {
		source  string
		program *vm.Program
	}
)

func NewEnv(pair gnode.NodeObjPair) Env {
	return Env{
		ID:        pair.Node.ID,
		FQN:       pair.Node.FQN,
		Path:      pair.Node.Path,
		FileName:  pair.Node.FileName,
		NumFields: len(pair.Fields),
		HasField: func(id string) bool {
			_, ok := pair.Field(id)
			return ok
		},
		Field: func(id string) any {
			field, ok := pair.Field(id)
			if !ok {
				return nil
			}
			return gvalue.Plain(field.Value)
		},
	}
}

// Compile checks the expression against Env and requires a bool result. The
// empty expression compiles to a filter that matches everything.
func Compile(source string) (*Filter, error) {
	if source == "" {
		return &Filter{}, nil
	}
	program, err := expr.Compile(source, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, errors.Wrapf(err, "gfilter.Compile error: `%s`", source)
	}
	return &Filter{
		source:  source,
		program: program,
	}, nil
}

func (r *Filter) String() string {
	return r.source
}

func (r *Filter) Match(pair gnode.NodeObjPair) (bool, error) {
	if r.program == nil {
		return true, nil
	}
	output, err := expr.Run(r.program, NewEnv(pair))
	if err != nil {
		return false, errors.Wrapf(err, "gfilter.Filter.Match error: node %q", pair.Node.ID)
	}
	matched, ok := output.(bool)
	if !ok {
		return false, errors.Errorf("gfilter.Filter.Match error: `%s` gave %T, not bool", r.source, output)
	}
	return matched, nil
}

// Apply keeps the records that match, in order. The first evaluation error
// stops it.
func (r *Filter) Apply(pairs []gnode.NodeObjPair) ([]gnode.NodeObjPair, error) {
	kept := make([]gnode.NodeObjPair, 0, len(pairs))
	for _, pair := range pairs {
		matched, err := r.Match(pair)
		if err != nil {
			return nil, err
		}
		if matched {
			kept = append(kept, pair)
		}
	}
	return kept, nil
}
