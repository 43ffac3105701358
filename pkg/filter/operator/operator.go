// Package operator defines the closed set of comparison operators a
// criterion can carry.
package operator

// Comparison identifies one comparison operator.
type Comparison string

const (
	Exists      Comparison = "exists"
	GreaterThan Comparison = "gt"
	LessThan    Comparison = "lt"
	Equals      Comparison = "equals"
	Regex       Comparison = "regex"
)

// phrases back the human readable rendering of a criterion.
var phrases = map[Comparison]string{
	Exists:      "exists",
	GreaterThan: "is greater than",
	LessThan:    "is less than",
	Equals:      "is equal to",
	Regex:       "matches the regular expression",
}

// Phrase returns the human readable form of the operator, e.g.
// "is greater than" for GreaterThan.
func (c Comparison) Phrase() string {
	return phrases[c]
}

// Valid reports whether the operator belongs to the supported set.
func (c Comparison) Valid() bool {
	_, ok := phrases[c]
	return ok
}

// Numeric reports whether the operator compares parsed numbers.
func (c Comparison) Numeric() bool {
	return c == GreaterThan || c == LessThan
}
