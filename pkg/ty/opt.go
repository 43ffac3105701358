package ty

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Opt holds a value that may be unset or explicitly null. Set tells the
// two states apart after decoding; Valid is false for an explicit null.
type Opt[T any] struct {
	Value T
	Set   bool
	Valid bool
}

// OptWrap returns an Opt carrying the given value.
func OptWrap[T any](value T) Opt[T] {
	return Opt[T]{
		Value: value,
		Set:   true,
		Valid: true,
	}
}

// S sets the value.
func (o *Opt[T]) S(v T) {
	o.Value = v
	o.Set = true
	o.Valid = true
}

// U clears the value back to unset.
func (o *Opt[T]) U() {
	var zero T
	o.Value = zero
	o.Set = false
	o.Valid = false
}

func (o *Opt[T]) UnmarshalJSON(data []byte) error {
	o.Set = true

	if string(data) == "null" {
		o.Valid = false
		return nil
	}

	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}

	o.Valid = true

	return nil
}

func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

func (o *Opt[T]) UnmarshalYAML(value *yaml.Node) error {
	o.Set = true

	if value.Kind == yaml.ScalarNode && value.Value == "null" {
		o.Valid = false
		return nil
	}

	var v T
	if err := value.Decode(&v); err != nil {
		return err
	}

	o.Value = v
	o.Valid = true

	return nil
}

func (o Opt[T]) MarshalYAML() (interface{}, error) {
	if !o.Set || !o.Valid {
		return nil, nil
	}
	return o.Value, nil
}
