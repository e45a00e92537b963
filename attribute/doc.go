// Package attribute implements typed, per-element attribute columns.
//
// Every attribute type is a Kind with an immutable Descriptor and a vtable
// of conversion functions built once at package initialization. A Column[T]
// stores the native values of one attribute densely by element id; the
// Description interface exposes any column without its native type.
//
// # Types
//
//   - boolean: bool
//   - integer: int32
//   - long: int64
//   - float: float32
//   - double: float64
//   - string: string
//   - datetime: time.Time with zone, millisecond text precision
//   - date: time.Time at UTC midnight
//   - object: any
//
// # Conversion contract
//
// ConvertFromString maps blank input to the type's default (string and
// object keep the text) and is the exact inverse of GetString for every
// value it produces. ConvertFromObject tries
// the canonical native form first and falls back to the type's legacy forms
// (for example epoch milliseconds for datetime) only if that fails.
//
// Example:
//
//	d, _ := attribute.New(attribute.KindDateTime)
//	_ = d.SetString(0, "2020-01-15T08:30:00.000Z")
//	d.GetLong(0)   // 1579077000000
//	d.GetString(0) // "2020-01-15T08:30:00.000Z"
//
// # Concurrency
//
// Columns follow a single-writer discipline enforced by the owning graph.
// Any number of readers may access a column while no write is in flight.
package attribute
