package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is the game currency amount. The frontend and several upstream
// services serialize currency as decimal strings ("12.50"), so all parsing
// goes through one boundary: anything that is not a finite number becomes 0,
// never NaN.
type Money float64

// ParseMoney normalizes a value of unknown shape (float, int, string, nil)
// into Money. Invalid or missing input yields 0.
func ParseMoney(v interface{}) Money {
	switch x := v.(type) {
	case nil:
		return 0
	case Money:
		return sanitize(float64(x))
	case float64:
		return sanitize(x)
	case float32:
		return sanitize(float64(x))
	case int:
		return Money(x)
	case int64:
		return Money(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0
		}
		return sanitize(f)
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return sanitize(f)
	default:
		return 0
	}
}

func sanitize(f float64) Money {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	// normalize negative zero so comparisons and JSON output stay stable
	if f == 0 {
		return 0
	}
	return Money(f)
}

// Round2 rounds to 2 decimal places, the precision the economy settles in.
func (m Money) Round2() Money {
	return Money(math.Round(float64(m)*100) / 100)
}

func (m Money) Float64() float64 { return float64(m) }

// String renders the canonical wire form with 2 decimal places.
func (m Money) String() string {
	return strconv.FormatFloat(float64(m.Round2()), 'f', 2, 64)
}

// MarshalJSON emits the decimal-string wire form used across the API.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts both bare numbers and decimal strings; anything
// malformed parses to 0 rather than failing the whole payload.
func (m *Money) UnmarshalJSON(data []byte) error {
	var raw interface{}
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		*m = 0
		return nil
	}
	*m = ParseMoney(raw)
	return nil
}

// Scan implements pgx/database scanning for NUMERIC columns, which arrive as
// string, float64 or nil depending on the driver path.
func (m *Money) Scan(src interface{}) error {
	switch x := src.(type) {
	case nil:
		*m = 0
	case []byte:
		*m = ParseMoney(string(x))
	default:
		*m = ParseMoney(x)
	}
	return nil
}

// Value implements driver.Valuer; stored as its 2dp decimal string.
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

func (m Money) GoString() string {
	return fmt.Sprintf("Money(%s)", m.String())
}
