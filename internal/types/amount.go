package types

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

var (
	ErrAmountOverflow  = errors.New("amount overflows 128 bits")
	ErrAmountUnderflow = errors.New("amount underflow")
	ErrDivisionByZero  = errors.New("division by zero")
)

// maxAmount is 2^128 - 1, the upper bound of every ledger quantity.
var maxAmount = new(uint256.Int).SubUint64(
	new(uint256.Int).Lsh(uint256.NewInt(1), 128), 1,
)

// Amount is an unsigned 128-bit token quantity in the smallest unit.
// Intermediate products are computed on 256 bits (512 for MulDiv) so share
// conversions never overflow before the final division.
type Amount struct {
	v uint256.Int
}

func NewAmount(v uint64) Amount {
	var a Amount
	a.v.SetUint64(v)
	return a
}

func ZeroAmount() Amount {
	return Amount{}
}

// AmountFromDecimal parses a base-10 string.
func AmountFromDecimal(s string) (Amount, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if v.Gt(maxAmount) {
		return Amount{}, ErrAmountOverflow
	}
	return Amount{v: *v}, nil
}

// MustAmountFromDecimal panics on malformed input. Intended for constants and tests.
func MustAmountFromDecimal(s string) Amount {
	a, err := AmountFromDecimal(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) IsZero() bool {
	return a.v.IsZero()
}

func (a Amount) Cmp(b Amount) int {
	return a.v.Cmp(&b.v)
}

func (a Amount) Eq(b Amount) bool {
	return a.v.Eq(&b.v)
}

func (a Amount) Lt(b Amount) bool {
	return a.v.Lt(&b.v)
}

func (a Amount) Gt(b Amount) bool {
	return a.v.Gt(&b.v)
}

func (a Amount) Add(b Amount) (Amount, error) {
	var r Amount
	if _, overflow := r.v.AddOverflow(&a.v, &b.v); overflow || r.v.Gt(maxAmount) {
		return Amount{}, ErrAmountOverflow
	}
	return r, nil
}

func (a Amount) Sub(b Amount) (Amount, error) {
	if a.v.Lt(&b.v) {
		return Amount{}, ErrAmountUnderflow
	}
	var r Amount
	r.v.Sub(&a.v, &b.v)
	return r, nil
}

// SaturatingSub returns a - b, or zero when b > a.
func (a Amount) SaturatingSub(b Amount) Amount {
	if a.v.Lt(&b.v) {
		return Amount{}
	}
	var r Amount
	r.v.Sub(&a.v, &b.v)
	return r
}

func (a Amount) Min(b Amount) Amount {
	if b.Lt(a) {
		return b
	}
	return a
}

// MulDiv returns a * mul / div, rounded down or up.
func (a Amount) MulDiv(mul, div Amount, roundUp bool) (Amount, error) {
	if div.IsZero() {
		return Amount{}, ErrDivisionByZero
	}
	var r Amount
	if _, overflow := r.v.MulDivOverflow(&a.v, &mul.v, &div.v); overflow {
		return Amount{}, ErrAmountOverflow
	}
	if roundUp {
		var rem uint256.Int
		if !rem.MulMod(&a.v, &mul.v, &div.v).IsZero() {
			r.v.AddUint64(&r.v, 1)
		}
	}
	if r.v.Gt(maxAmount) {
		return Amount{}, ErrAmountOverflow
	}
	return r, nil
}

func (a Amount) String() string {
	return a.v.Dec()
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.v.Dec())
}

// UnmarshalJSON accepts both a decimal string and a bare JSON number.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("invalid amount: %s", string(data))
		}
		s = n.String()
	}
	parsed, err := AmountFromDecimal(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Amounts are persisted as decimal strings; BSON has no 128-bit integer type.
func (a Amount) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(a.v.Dec())
}

func (a *Amount) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	s, ok := bson.RawValue{Type: t, Value: data}.StringValueOK()
	if !ok {
		return fmt.Errorf("cannot decode amount from bson type %s", t)
	}
	parsed, err := AmountFromDecimal(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
