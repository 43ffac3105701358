package filter

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bascanada/mapfilter/pkg/filter/operator"
	"github.com/bascanada/mapfilter/pkg/ty"
)

var (
	// ErrNotNumeric is returned by NewCriterion when a numeric operator
	// is given a comparison value that does not parse as a float.
	ErrNotNumeric = errors.New("comparison value is not numeric")

	// ErrMissingValue is returned at evaluation time when a numeric
	// operator is applied to a resource that has no value for the key.
	ErrMissingValue = errors.New("resource has no value for key")
)

// Criterion is a single comparison against one property of a resource.
// Fields are exported for marshaling but a Criterion is treated as
// immutable once built.
type Criterion struct {
	Key    string              `json:"key" yaml:"key"`
	Op     operator.Comparison `json:"op" yaml:"op"`
	Value  string              `json:"value" yaml:"value"`
	Number ty.Opt[float64]     `json:"number,omitempty" yaml:"number,omitempty"`
}

// NewCriterion builds a criterion from a key, an operator and a
// comparison value. For numeric operators the value is parsed here,
// once; an unparsable value yields ErrNotNumeric and no criterion.
// Nothing else is validated.
func NewCriterion(key string, op operator.Comparison, value string) (Criterion, error) {
	c := Criterion{Key: key, Op: op, Value: value}
	if op.Numeric() {
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return Criterion{}, fmt.Errorf("criterion %q: value %q: %w", key, value, ErrNotNumeric)
		}
		c.Number.S(n)
	}
	return c, nil
}

// String renders the criterion as "key phrase value". Numeric operators
// render the stored float, so a value added as "3e1" comes back as
// "30".
func (c Criterion) String() string {
	value := c.Value
	if c.Op.Numeric() && c.Number.Valid {
		value = strconv.FormatFloat(c.Number.Value, 'g', -1, 64)
	}
	return c.Key + " " + c.Op.Phrase() + " " + value
}

// evalFn evaluates one operator against the value a resource holds for
// the criterion's key. present is false when the resource has no such
// key.
type evalFn func(c Criterion, value string, present bool, allowMissing bool) (bool, error)

// evals maps every supported operator to its evaluation; adding an
// operator means one constant in the operator package and one entry
// here.
var evals = map[operator.Comparison]evalFn{
	operator.Equals:      evalEquals,
	operator.Exists:      evalExists,
	operator.GreaterThan: evalGreater,
	operator.LessThan:    evalLess,
	operator.Regex:       evalRegex,
}

// Evaluate checks the criterion against the value a resource holds for
// its key. allowMissing is the owning filter's missing-field policy,
// consulted only by the regex operator.
func (c Criterion) Evaluate(value string, present, allowMissing bool) (bool, error) {
	eval, ok := evals[c.Op]
	if !ok {
		return false, fmt.Errorf("criterion %q: unknown operator %q", c.Key, c.Op)
	}
	return eval(c, value, present, allowMissing)
}

// Eval convenience for a whole resource; used by the expr package.
func (c Criterion) Eval(resource ty.MS, allowMissing bool) (bool, error) {
	value, present := resource.GetOk(c.Key)
	return c.Evaluate(value, present, allowMissing)
}

func evalEquals(c Criterion, value string, present, _ bool) (bool, error) {
	return present && value == c.Value, nil
}

// evalExists reads the comparison value as a boolean: "true" asks for
// the key to be present, anything else for it to be absent.
func evalExists(c Criterion, _ string, present, _ bool) (bool, error) {
	expected := strings.EqualFold(c.Value, "true")
	return present == expected, nil
}

func evalGreater(c Criterion, value string, present, _ bool) (bool, error) {
	n, err := resourceFloat(c, value, present)
	if err != nil {
		return false, err
	}
	return n > c.Number.Value, nil
}

func evalLess(c Criterion, value string, present, _ bool) (bool, error) {
	n, err := resourceFloat(c, value, present)
	if err != nil {
		return false, err
	}
	return n < c.Number.Value, nil
}

// resourceFloat parses the resource side of a numeric comparison. A
// missing or unparsable value is an error that aborts the match call.
func resourceFloat(c Criterion, value string, present bool) (float64, error) {
	if !present {
		return 0, fmt.Errorf("criterion %q: %w", c.Key, ErrMissingValue)
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("criterion %q: value %q: %w", c.Key, value, err)
	}
	return n, nil
}

// evalRegex compiles the pattern on every call, anchored so the whole
// value has to match, not a substring. A missing value falls back to
// the policy flag.
func evalRegex(c Criterion, value string, present, allowMissing bool) (bool, error) {
	if !present {
		return allowMissing, nil
	}
	re, err := regexp.Compile(`\A(?:` + c.Value + `)\z`)
	if err != nil {
		return false, fmt.Errorf("criterion %q: %w", c.Key, err)
	}
	return re.MatchString(value), nil
}
