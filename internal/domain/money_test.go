package domain

import (
	"database/sql/driver"
	"encoding/json"
	"math"
	"testing"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want Money
	}{
		{"decimal string", "12.50", 12.50},
		{"integer string", "7", 7},
		{"padded string", "  3.10 ", 3.10},
		{"empty string", "", 0},
		{"garbage string", "abc", 0},
		{"nil", nil, 0},
		{"float", 1.25, 1.25},
		{"int", 42, 42},
		{"int64", int64(9), 9},
		{"nan", math.NaN(), 0},
		{"plus inf", math.Inf(1), 0},
		{"minus inf", math.Inf(-1), 0},
		{"negative zero", math.Copysign(0, -1), 0},
		{"negative", -5.5, -5.5},
		{"unknown type", struct{}{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseMoney(tt.in)
			if got != tt.want {
				t.Errorf("ParseMoney(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if math.IsNaN(got.Float64()) {
				t.Errorf("ParseMoney(%v) produced NaN", tt.in)
			}
		})
	}
}

func TestMoneyString(t *testing.T) {
	tests := []struct {
		in   Money
		want string
	}{
		{12.5, "12.50"},
		{0, "0.00"},
		{0.005, "0.01"},
		{-3, "-3.00"},
		{1234.567, "1234.57"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("Money(%v).String() = %q, want %q", float64(tt.in), got, tt.want)
		}
	}
}

func TestMoneyJSON(t *testing.T) {
	b, err := json.Marshal(Money(12.5))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"12.50"` {
		t.Errorf("marshal = %s, want \"12.50\"", b)
	}

	var m Money
	for _, raw := range []string{`"12.50"`, `12.5`} {
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if m != 12.5 {
			t.Errorf("unmarshal %s = %v, want 12.5", raw, m)
		}
	}

	// malformed input must degrade to 0, not fail the payload
	if err := json.Unmarshal([]byte(`"not-a-number"`), &m); err != nil {
		t.Fatalf("unmarshal malformed: %v", err)
	}
	if m != 0 {
		t.Errorf("malformed input = %v, want 0", m)
	}
}

func TestMoneyScan(t *testing.T) {
	var m Money
	if err := m.Scan([]byte("99.90")); err != nil {
		t.Fatal(err)
	}
	if m != 99.9 {
		t.Errorf("scan bytes = %v, want 99.9", m)
	}
	if err := m.Scan(nil); err != nil {
		t.Fatal(err)
	}
	if m != 0 {
		t.Errorf("scan nil = %v, want 0", m)
	}
}

func TestMoneyValue(t *testing.T) {
	var _ driver.Valuer = Money(0)

	v, err := Money(12.345).Value()
	if err != nil {
		t.Fatal(err)
	}
	if v != "12.35" {
		t.Errorf("Value() = %v, want %q", v, "12.35")
	}
}
