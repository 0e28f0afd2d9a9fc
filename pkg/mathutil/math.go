package mathutil

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

var (
	//BigOne represents a single unit of an asset with precision 8
	BigOne = uint64(math.Pow10(8))
	//BigOneDecimal represents a single unit of an asset with precision 8 as decimal.Decimal
	BigOneDecimal = decimal.NewFromInt(int64(BigOne))
)

func init() {
	decimal.DivisionPrecision = 8
}

//Div takes two uint64 numbers and divides them x / y and returns the result as decimal.Decimal
func Div(x, y uint64) (z decimal.Decimal) {
	X, Y := decimal.NewFromBigInt(new(big.Int).SetUint64(x), 0), decimal.NewFromBigInt(new(big.Int).SetUint64(y), 0)
	z = DivDecimal(X, Y)
	return
}

//DivDecimal takes two decimal.Decimal numbers and divides them x / y and returns the result as decimal.Decimal
func DivDecimal(X, Y decimal.Decimal) (z decimal.Decimal) {
	z = X.Div(Y)
	return
}

//ToUnits scales a fixed-point quantity down to human units (precision 8)
func ToUnits(x uint64) decimal.Decimal {
	return Div(x, BigOne)
}
