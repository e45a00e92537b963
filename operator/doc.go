// Package operator provides the process-wide operator dispatch table.
//
// An Operators value maps an operation name (SUM, QUOTIENT, ...) to a
// Registry. Each Registry maps an operand signature (left kind, right kind)
// to a monomorphic implementation. Modules contribute implementations at
// load time via RegisterModule; the registration order does not matter.
//
// # Numeric kinds
//
// Four primitive kinds are supported:
//
//   - KindInt: int32
//   - KindLong: int64
//   - KindFloat: float32
//   - KindDouble: float64
//
// Mixed operand pairs are promoted to the wider kind using the total order
// int < long < float < double before lookup.
//
// # Division
//
// Integer division and modulus by zero return an *ArithmeticError. Floating
// point division by zero follows IEEE 754 and yields ±Inf or NaN.
//
// Example:
//
//	reg := operator.Default().Registry(operator.QuotientName)
//	h, err := reg.Resolve(operator.KindLong, operator.KindLong)
//	if err != nil {
//	    return err
//	}
//	q, err := operator.Call[int64](h, 7, 2) // 3
package operator
