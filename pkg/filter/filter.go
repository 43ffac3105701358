// Package filter matches string property maps against registered
// comparison criteria.
//
// Build a Filter with New, register comparisons with AddCriterion, then
// call Matches once per resource. All registered criteria must pass for
// a resource to match; a filter with no criteria matches nothing.
package filter

import (
	"github.com/bascanada/mapfilter/pkg/filter/operator"
	"github.com/bascanada/mapfilter/pkg/ty"
)

// Filter owns a set of criteria grouped by property key and decides
// whether a resource satisfies all of them. It is not safe for
// concurrent mutation: register everything first, then match from as
// many readers as needed.
type Filter struct {
	criteria           map[string][]Criterion
	allowMissingFields bool
}

// New returns an empty filter that allows missing fields.
func New() *Filter {
	return &Filter{
		criteria:           map[string][]Criterion{},
		allowMissingFields: true,
	}
}

// Reset drops every registered criterion. The missing-field policy is
// left as it was.
func (f *Filter) Reset() {
	f.criteria = map[string][]Criterion{}
}

// AllowMissingFields sets the missing-field policy: with true a regex
// criterion whose key is absent from the resource counts as a match,
// with false it counts as a miss. The other operators carry their own
// missing-value behavior and ignore the flag.
func (f *Filter) AllowMissingFields(allow bool) {
	f.allowMissingFields = allow
}

// AddCriterion registers one comparison for the given key. Several
// criteria may share a key (age above 25 and age below 35 both live
// under "age"). A numeric criterion whose comparison value does not
// parse as a float is dropped without error, so one bad term never
// aborts building the rest of a filter.
func (f *Filter) AddCriterion(key string, op operator.Comparison, value string) {
	c, err := NewCriterion(key, op, value)
	if err != nil {
		return
	}
	f.criteria[key] = append(f.criteria[key], c)
}

// Len returns how many criteria are registered.
func (f *Filter) Len() int {
	n := 0
	for _, cs := range f.criteria {
		n += len(cs)
	}
	return n
}

// CriteriaStrings renders every registered criterion. Keys come out in
// map order; criteria sharing a key keep the order they were added in.
func (f *Filter) CriteriaStrings() []string {
	out := make([]string, 0, f.Len())
	for _, cs := range f.criteria {
		for _, c := range cs {
			out = append(out, c.String())
		}
	}
	return out
}

// Matches reports whether the resource satisfies every registered
// criterion. Evaluation stops at the first miss. Numeric criteria
// return an error when the resource value is missing or not a number,
// and an invalid regex pattern surfaces the same way; an error aborts
// the whole call.
func (f *Filter) Matches(resource ty.MS) (bool, error) {
	if len(f.criteria) == 0 {
		return false, nil
	}

	for key, criteria := range f.criteria {
		value, present := resource.GetOk(key)

		for _, c := range criteria {
			ok, err := c.Evaluate(value, present, f.allowMissingFields)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
	}

	return true, nil
}
