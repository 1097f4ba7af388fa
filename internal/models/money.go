package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Money is an amount in minor currency units.
type Money int64

const minorExp = -2

func (m Money) Mul(n int) Money {
	return m * Money(n)
}

func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), minorExp)
}

func (m Money) String() string {
	return m.Decimal().StringFixed(-minorExp)
}

// MoneyFromDecimal rounds half away from zero to the nearest minor unit.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money(d.Shift(-minorExp).Round(0).IntPart())
}

type moneyJSON struct {
	Amount  int64  `json:"amount"`
	Display string `json:"display"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: int64(m), Display: m.String()})
}

func (m *Money) UnmarshalJSON(b []byte) error {
	var minor int64
	if err := json.Unmarshal(b, &minor); err == nil {
		*m = Money(minor)
		return nil
	}

	var v moneyJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*m = Money(v.Amount)

	return nil
}
