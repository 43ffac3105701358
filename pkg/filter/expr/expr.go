// Package expr layers boolean combinators over the flat filter model.
// A node is either a comparison on one field or an AND/OR/NOT group of
// child nodes; comparison leaves evaluate through the same engine as
// pkg/filter, so operator semantics never diverge between the two.
package expr

import (
	"fmt"

	"github.com/bascanada/mapfilter/pkg/filter"
	"github.com/bascanada/mapfilter/pkg/filter/operator"
	"github.com/bascanada/mapfilter/pkg/ty"
)

type Logic string

const (
	LogicAnd Logic = "AND"
	LogicOr  Logic = "OR"
	LogicNot Logic = "NOT"
)

// Expr is a recursive filter expression. A node with Field set is a
// comparison leaf; a node with Logic set is a group over Exprs. The
// zero Expr matches everything.
type Expr struct {
	// --- Leaf (comparison) ---
	Field  string              `json:"field,omitempty" yaml:"field,omitempty"`
	Op     operator.Comparison `json:"op,omitempty" yaml:"op,omitempty"`
	Value  string              `json:"value,omitempty" yaml:"value,omitempty"`
	Negate bool                `json:"negate,omitempty" yaml:"negate,omitempty"`

	// --- Group ---
	Logic Logic  `json:"logic,omitempty" yaml:"logic,omitempty"`
	Exprs []Expr `json:"exprs,omitempty" yaml:"exprs,omitempty"`
}

// leafOp resolves the effective operator of a leaf; an empty Op means
// equals.
func (e *Expr) leafOp() operator.Comparison {
	if e.Op == "" {
		return operator.Equals
	}
	return e.Op
}

// Validate checks that the expression is structurally sound. Unlike
// Filter.AddCriterion, nothing is dropped silently here: a malformed
// leaf is reported, which is the point of the separate layer.
func (e *Expr) Validate() error {
	if e == nil {
		return nil
	}

	isLeaf := e.Field != ""
	isGroup := e.Logic != ""

	// A node is a leaf or a group, never both. Neither means the
	// match-all expression, which is fine.
	if isLeaf && isGroup {
		return fmt.Errorf("expression cannot have both 'field' and 'logic' set")
	}
	if !isLeaf && !isGroup {
		return nil
	}

	if isLeaf {
		op := e.leafOp()
		if !op.Valid() {
			return fmt.Errorf("invalid operator: %s", e.Op)
		}

		// exists carries its expectation in the value and may leave it
		// empty (empty reads as "false"); every other operator needs
		// something to compare against.
		if op != operator.Exists && e.Value == "" {
			return fmt.Errorf("expression on field %q requires a value (unless op is 'exists')", e.Field)
		}

		// Numeric leaves must carry a parsable comparison value.
		if _, err := filter.NewCriterion(e.Field, op, e.Value); err != nil {
			return err
		}

		if len(e.Exprs) > 0 {
			return fmt.Errorf("comparison on field %q cannot have nested expressions", e.Field)
		}

		return nil
	}

	switch e.Logic {
	case LogicAnd, LogicOr, LogicNot:
	default:
		return fmt.Errorf("invalid logic operator: %s", e.Logic)
	}

	if e.Logic == LogicNot && len(e.Exprs) == 0 {
		return fmt.Errorf("NOT expression must have at least one child")
	}

	if e.Value != "" {
		return fmt.Errorf("group expression (logic=%q) should not have a value", e.Logic)
	}

	for i := range e.Exprs {
		if err := e.Exprs[i].Validate(); err != nil {
			return fmt.Errorf("expr[%d]: %w", i, err)
		}
	}

	return nil
}

// Match evaluates the expression against a resource. allowMissing is
// the missing-field policy handed down to regex leaves, same meaning as
// Filter.AllowMissingFields. Errors from leaves (missing or non-numeric
// values under gt/lt, bad regex patterns) abort the whole evaluation.
func (e *Expr) Match(resource ty.MS, allowMissing bool) (bool, error) {
	if e == nil {
		return true, nil
	}

	if e.Logic != "" {
		return e.matchGroup(resource, allowMissing)
	}

	if e.Field != "" {
		return e.matchLeaf(resource, allowMissing)
	}

	// Empty expression matches everything.
	return true, nil
}

func (e *Expr) matchGroup(resource ty.MS, allowMissing bool) (bool, error) {
	if len(e.Exprs) == 0 {
		return true, nil
	}

	switch e.Logic {
	case LogicAnd:
		for i := range e.Exprs {
			ok, err := e.Exprs[i].Match(resource, allowMissing)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil

	case LogicOr:
		for i := range e.Exprs {
			ok, err := e.Exprs[i].Match(resource, allowMissing)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil

	case LogicNot:
		// NOT inverts the AND of its children.
		for i := range e.Exprs {
			ok, err := e.Exprs[i].Match(resource, allowMissing)
			if err != nil {
				return false, err
			}
			if !ok {
				return true, nil
			}
		}
		return false, nil
	}

	return true, nil
}

func (e *Expr) matchLeaf(resource ty.MS, allowMissing bool) (bool, error) {
	c, err := filter.NewCriterion(e.Field, e.leafOp(), e.Value)
	if err != nil {
		return false, err
	}

	ok, err := c.Eval(resource, allowMissing)
	if err != nil {
		return false, err
	}

	if e.Negate {
		return !ok, nil
	}
	return ok, nil
}
