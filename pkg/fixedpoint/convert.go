package fixedpoint

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// DefaultPrecision is the number of fractional digits kept by Mul and Div.
// Add and Sub are exact.
const DefaultPrecision = 16

// Value is a fixed-point decimal number. The zero value is 0.
type Value decimal.Decimal

var (
	Zero    = Value(decimal.Zero)
	One     = NewFromInt(1)
	Two     = NewFromInt(2)
	Three   = NewFromInt(3)
	Four    = NewFromInt(4)
	Ten     = NewFromInt(10)
	Hundred = NewFromInt(100)
)

func (v Value) dec() decimal.Decimal {
	return decimal.Decimal(v)
}

func (v Value) Float64() float64 {
	f, _ := v.dec().Float64()
	return f
}

func (v Value) Int64() int64 {
	return v.dec().IntPart()
}

func (v Value) Add(v2 Value) Value {
	return Value(v.dec().Add(v2.dec()))
}

func (v Value) Sub(v2 Value) Value {
	return Value(v.dec().Sub(v2.dec()))
}

func (v Value) Mul(v2 Value) Value {
	return Value(v.dec().Mul(v2.dec()).Round(DefaultPrecision))
}

func (v Value) MulFloat64(f float64) Value {
	return v.Mul(NewFromFloat(f))
}

// Div returns v / v2 rounded to DefaultPrecision. Dividing by zero returns Zero.
func (v Value) Div(v2 Value) Value {
	if v2.IsZero() {
		return Zero
	}
	return Value(v.dec().DivRound(v2.dec(), DefaultPrecision))
}

func (v Value) Neg() Value {
	return Value(v.dec().Neg())
}

func (v Value) Abs() Value {
	return Value(v.dec().Abs())
}

func (v Value) Sign() int {
	return v.dec().Sign()
}

func (v Value) IsZero() bool {
	return v.dec().IsZero()
}

// Compare returns -1, 0 or 1.
func (v Value) Compare(v2 Value) int {
	return v.dec().Cmp(v2.dec())
}

// Eq compares the numeric value, so 1.50 equals 1.5.
func (v Value) Eq(v2 Value) bool {
	return v.dec().Equal(v2.dec())
}

func (v Value) Round(places int) Value {
	return Value(v.dec().Round(int32(places)))
}

func (v Value) Ceil() Value {
	return Value(v.dec().Ceil())
}

// NumFractionalDigits returns the number of fractional digits without trailing zeros.
func (v Value) NumFractionalDigits() int {
	s := v.dec().String()
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return 0
	}
	return len(strings.TrimRight(s[i+1:], "0"))
}

func (v Value) String() string {
	return v.dec().String()
}

// FormatString formats the value with exactly prec fractional digits.
func (v Value) FormatString(prec int) string {
	return v.dec().StringFixed(int32(prec))
}

func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var a interface{}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	switch d := a.(type) {
	case float64:
		nv, err := NewFromString(string(data))
		if err != nil {
			nv = NewFromFloat(d)
		}
		*v = nv

	case string:
		nv, err := NewFromString(d)
		if err != nil {
			return err
		}
		*v = nv

	default:
		return errors.Errorf("unsupported type: %T %v", d, d)
	}

	return nil
}

func (v *Value) UnmarshalYAML(unmarshal func(a interface{}) error) (err error) {
	var s string
	if err = unmarshal(&s); err == nil {
		nv, err2 := NewFromString(s)
		if err2 == nil {
			*v = nv
			return nil
		}
	}

	var f float64
	if err = unmarshal(&f); err == nil {
		*v = NewFromFloat(f)
		return nil
	}

	return err
}

// NewFromString parses a decimal string. A trailing "%" divides the value by 100.
func NewFromString(input string) (Value, error) {
	input = strings.TrimSpace(input)
	percent := strings.HasSuffix(input, "%")
	if percent {
		input = strings.TrimSuffix(input, "%")
	}

	d, err := decimal.NewFromString(input)
	if err != nil {
		return Zero, errors.Wrapf(err, "unable to parse %q as decimal", input)
	}

	v := Value(d)
	if percent {
		v = v.ToPercentDecimal()
	}
	return v, nil
}

func MustNewFromString(input string) Value {
	v, err := NewFromString(input)
	if err != nil {
		panic(err)
	}
	return v
}

// NewFromFloat converts a binary float. NaN and infinities become Zero.
func NewFromFloat(val float64) Value {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return Zero
	}
	return Value(decimal.NewFromFloat(val).Round(DefaultPrecision))
}

func NewFromInt(val int64) Value {
	return Value(decimal.NewFromInt(val))
}
