package ty

// MS is a shorthand for map[string]string, the shape of a resource
// under test: property name to property value.
type MS map[string]string

// Merge merges another MS into this one.
func (ms *MS) Merge(ms2 MS) {
	for k, v := range ms2 {
		(*ms)[k] = v
	}
}

// GetOk returns the value for the key and whether the key is present,
// so an absent key and an empty value stay distinguishable.
func (ms MS) GetOk(key string) (string, bool) {
	v, ok := ms[key]
	return v, ok
}

// Clone returns a shallow copy.
func (ms MS) Clone() MS {
	out := make(MS, len(ms))
	for k, v := range ms {
		out[k] = v
	}
	return out
}
