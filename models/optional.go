package models

import "encoding/json"

// Optional is a presence-aware JSON field for partial updates. It keeps
// "field omitted" and "field present with null" distinguishable: an omitted
// field is never unmarshalled (Set=false), an explicit null sets Set=true
// with Valid=false, and a concrete value sets both.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		var zero T
		o.Valid = false
		o.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// Ptr returns the value as a nullable pointer: nil for an explicit null.
func (o Optional[T]) Ptr() *T {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}
