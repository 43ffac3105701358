package ty

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

type optHost struct {
	Label  Opt[string]  `json:"label,omitempty" yaml:"label,omitempty"`
	Number Opt[float64] `json:"number,omitempty" yaml:"number,omitempty"`
}

func TestOptUnmarshalYAML(t *testing.T) {
	tests := []struct {
		name     string
		yamlData string
		expected optHost
	}{
		{
			name: "both present",
			yamlData: `label: "age"
number: 30.5`,
			expected: optHost{
				Label:  Opt[string]{Value: "age", Set: true, Valid: true},
				Number: Opt[float64]{Value: 30.5, Set: true, Valid: true},
			},
		},
		{
			name:     "number omitted",
			yamlData: `label: "age"`,
			expected: optHost{
				Label:  Opt[string]{Value: "age", Set: true, Valid: true},
				Number: Opt[float64]{Set: false, Valid: false},
			},
		},
		{
			name:     "explicit null",
			yamlData: `number: null`,
			expected: optHost{
				Number: Opt[float64]{Set: true, Valid: false},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result optHost
			err := yaml.Unmarshal([]byte(tt.yamlData), &result)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestOptMarshalYAML(t *testing.T) {
	host := optHost{Number: OptWrap(30.0)}

	out, err := yaml.Marshal(host)
	assert.NoError(t, err)
	assert.Contains(t, string(out), "number: 30")
}

func TestOptJSONRoundTrip(t *testing.T) {
	host := optHost{
		Label:  OptWrap("age"),
		Number: OptWrap(30.5),
	}

	data, err := json.Marshal(host)
	assert.NoError(t, err)

	var back optHost
	assert.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, host, back)
}

func TestOptMutators(t *testing.T) {
	var o Opt[float64]
	assert.False(t, o.Set)

	o.S(30)
	assert.True(t, o.Set)
	assert.True(t, o.Valid)
	assert.Equal(t, 30.0, o.Value)

	o.U()
	assert.False(t, o.Set)
	assert.False(t, o.Valid)
	assert.Zero(t, o.Value)
}
