package model

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"
)

// Tour is a bookable package listed in the gallery.
type Tour struct {
	ID        string `json:"_id"`
	Title     string `json:"title"`
	TourImage string `json:"tour_image"`
	Nights    int    `json:"nights"`
	Price     Price  `json:"price"`
}

// Days is the trip length in days; a tour of N nights lasts N+1 days.
func (t Tour) Days() int { return t.Nights + 1 }

// Price is an optional amount.  Valid is false when the backend sent no
// price, null, or anything that is not a JSON number.
type Price struct {
	Amount decimal.Decimal
	Valid  bool
}

// NewPrice builds a Price from a float.  NaN and infinities are invalid.
func NewPrice(f float64) Price {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Price{}
	}
	return Price{Amount: decimal.NewFromFloat(f), Valid: true}
}

// Displayable reports whether the price should be rendered as an amount.
// A zero amount is treated like a missing one.
func (p Price) Displayable() bool {
	return p.Valid && !p.Amount.IsZero()
}

// UnmarshalJSON never fails: values that are not numbers decode to an
// invalid price so one bad record cannot break the whole collection.
func (p *Price) UnmarshalJSON(b []byte) error {
	*p = Price{}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	num, ok := v.(json.Number)
	if !ok {
		return nil
	}
	d, err := decimal.NewFromString(num.String())
	if err != nil {
		return nil
	}
	p.Amount = d
	p.Valid = true
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return []byte(p.Amount.String()), nil
}
