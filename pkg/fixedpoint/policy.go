package fixedpoint

// Display precisions. Rounding is half away from zero.
const (
	PrecisionPercent  = 3
	PrecisionMoney    = 6
	PrecisionQuantity = 3
)

// ToPercent scales a ratio to percent, e.g. 0.1 -> 10.000.
func (v Value) ToPercent() Value {
	return Value(v.dec().Mul(Hundred.dec()).Round(PrecisionPercent))
}

// ToPercentDecimal is the inverse scale of ToPercent, without rounding.
func (v Value) ToPercentDecimal() Value {
	return Value(v.dec().Shift(-2))
}

func (v Value) ToMoney() Value {
	return v.Round(PrecisionMoney)
}

func (v Value) ToQuantity() Value {
	return v.Round(PrecisionQuantity)
}

func (v Value) IsPosOne() bool {
	return v.Eq(One)
}
