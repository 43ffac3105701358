package filter

import (
	"testing"

	"github.com/bascanada/mapfilter/pkg/filter/operator"
	"github.com/bascanada/mapfilter/pkg/ty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCriterion(t *testing.T) {
	t.Run("numeric value parsed once at construction", func(t *testing.T) {
		c, err := NewCriterion("age", operator.GreaterThan, "30")
		require.NoError(t, err)
		assert.True(t, c.Number.Valid)
		assert.Equal(t, 30.0, c.Number.Value)
	})

	t.Run("non-numeric value rejected for numeric operators", func(t *testing.T) {
		_, err := NewCriterion("age", operator.GreaterThan, "abc")
		assert.ErrorIs(t, err, ErrNotNumeric)

		_, err = NewCriterion("age", operator.LessThan, "")
		assert.ErrorIs(t, err, ErrNotNumeric)
	})

	t.Run("no parsing for the other operators", func(t *testing.T) {
		c, err := NewCriterion("age", operator.Equals, "abc")
		require.NoError(t, err)
		assert.False(t, c.Number.Set)
	})
}

func TestCriterionString(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		op       operator.Comparison
		value    string
		expected string
	}{
		{"equals", "role", operator.Equals, "administrator", "role is equal to administrator"},
		{"exists", "trace_id", operator.Exists, "true", "trace_id exists true"},
		{"regex", "name", operator.Regex, "Jo.*", "name matches the regular expression Jo.*"},
		{"greater than renders the stored float", "age", operator.GreaterThan, "30", "age is greater than 30"},
		{"less than keeps decimals", "age", operator.LessThan, "30.5", "age is less than 30.5"},
		{"scientific notation normalized", "age", operator.GreaterThan, "3e1", "age is greater than 30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCriterion(tt.key, tt.op, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c.String())
		})
	}
}

func TestCriterionEvaluateUnknownOperator(t *testing.T) {
	c := Criterion{Key: "role", Op: "wildcard", Value: "admin*"}

	ok, err := c.Evaluate("administrator", true, true)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestCriterionEval(t *testing.T) {
	c, err := NewCriterion("age", operator.LessThan, "35")
	require.NoError(t, err)

	ok, err := c.Eval(ty.MS{"age": "30"}, true)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Eval(ty.MS{}, true)
	assert.ErrorIs(t, err, ErrMissingValue)
	assert.False(t, ok)
}
