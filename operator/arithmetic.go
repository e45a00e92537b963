package operator

import "math"

// ArithmeticOperation groups the four monomorphic implementations of one
// semantic operation. Nil members are skipped on registration.
type ArithmeticOperation struct {
	Name   string
	Int    Func[int32]
	Long   Func[int64]
	Float  Func[float32]
	Double Func[float64]
}

// Register inserts every non-nil implementation into r.
func (op ArithmeticOperation) Register(r *Registry) error {
	if err := Register(r, op.Int); err != nil {
		return err
	}
	if err := Register(r, op.Long); err != nil {
		return err
	}
	if err := Register(r, op.Float); err != nil {
		return err
	}
	return Register(r, op.Double)
}

// Module returns a Module registering op under op.Name.
func (op ArithmeticOperation) Module() Module {
	return func(ops *Operators) error {
		return op.Register(ops.Registry(op.Name))
	}
}

// Total lifts an infallible function into a Func.
func Total[T Number](fn func(a, b T) T) Func[T] {
	return func(a, b T) (T, error) {
		return fn(a, b), nil
	}
}

// Uniform builds an ArithmeticOperation from one generic body.
func Uniform(name string, int32Fn func(a, b int32) int32, int64Fn func(a, b int64) int64, float32Fn func(a, b float32) float32, float64Fn func(a, b float64) float64) ArithmeticOperation {
	return ArithmeticOperation{
		Name:   name,
		Int:    Total(int32Fn),
		Long:   Total(int64Fn),
		Float:  Total(float32Fn),
		Double: Total(float64Fn),
	}
}

type integer interface {
	int32 | int64
}

// divisionLike wraps an integer body with the zero-divisor check shared by
// QUOTIENT and MODULUS.
func divisionLike[T integer](name string, fn func(a, b T) T) Func[T] {
	return func(a, b T) (T, error) {
		if b == 0 {
			return 0, &ArithmeticError{Operation: name, Kind: KindOf[T]()}
		}
		return fn(a, b), nil
	}
}

func add[T Number](a, b T) T { return a + b }
func sub[T Number](a, b T) T { return a - b }
func mul[T Number](a, b T) T { return a * b }
func div[T Number](a, b T) T { return a / b }
func rem[T integer](a, b T) T { return a % b }

func minOf[T Number](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func maxOf[T Number](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func fmod32(a, b float32) float32 { return float32(math.Mod(float64(a), float64(b))) }
