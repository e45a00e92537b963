package operator

import "math"

// Operation names of the built-in modules.
const (
	SumName        = "SUM"
	DifferenceName = "DIFFERENCE"
	ProductName    = "PRODUCT"
	QuotientName   = "QUOTIENT"
	ModulusName    = "MODULUS"
	MinName        = "MIN"
	MaxName        = "MAX"
)

var (
	// Sum adds two operands.
	Sum = Uniform(SumName, add[int32], add[int64], add[float32], add[float64])

	// Difference subtracts the right operand from the left.
	Difference = Uniform(DifferenceName, sub[int32], sub[int64], sub[float32], sub[float64])

	// Product multiplies two operands.
	Product = Uniform(ProductName, mul[int32], mul[int64], mul[float32], mul[float64])

	// Quotient divides the left operand by the right. Integer kinds truncate
	// toward zero and fail on a zero divisor; floating kinds follow IEEE 754.
	Quotient = ArithmeticOperation{
		Name:   QuotientName,
		Int:    divisionLike(QuotientName, div[int32]),
		Long:   divisionLike(QuotientName, div[int64]),
		Float:  Total(div[float32]),
		Double: Total(div[float64]),
	}

	// Modulus is the truncated remainder. Floating kinds yield NaN for a zero
	// divisor.
	Modulus = ArithmeticOperation{
		Name:   ModulusName,
		Int:    divisionLike(ModulusName, rem[int32]),
		Long:   divisionLike(ModulusName, rem[int64]),
		Float:  Total(fmod32),
		Double: Total(math.Mod),
	}

	// Min returns the smaller operand.
	Min = Uniform(MinName, minOf[int32], minOf[int64], minOf[float32], minOf[float64])

	// Max returns the larger operand.
	Max = Uniform(MaxName, maxOf[int32], maxOf[int64], maxOf[float32], maxOf[float64])
)

// Builtins lists the operations registered into Default at load time.
var Builtins = []ArithmeticOperation{Sum, Difference, Product, Quotient, Modulus, Min, Max}

// BuiltinModules returns one Module per built-in operation, for use with New.
func BuiltinModules() []Module {
	out := make([]Module, len(Builtins))
	for i, op := range Builtins {
		out[i] = op.Module()
	}
	return out
}

func init() {
	for _, op := range Builtins {
		RegisterModule(op.Name, op.Module())
	}
}
