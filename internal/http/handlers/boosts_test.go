package handlers

import (
	"encoding/json"
	"testing"
)

// The purchase bodies use the same keys the quote responses document
// (snack_type, boost_percent), so a client can echo a quote row back.
func TestBoostRequestKeys(t *testing.T) {
	var snack BuySnackRequest
	if err := json.Unmarshal([]byte(`{"snack_type":"steak"}`), &snack); err != nil {
		t.Fatal(err)
	}
	if snack.Snack != "steak" {
		t.Errorf("snack_type bound %q, want steak", snack.Snack)
	}

	var boost BuyROIBoostRequest
	if err := json.Unmarshal([]byte(`{"boost_percent":15}`), &boost); err != nil {
		t.Fatal(err)
	}
	if boost.Step != 15 {
		t.Errorf("boost_percent bound %v, want 15", boost.Step)
	}
}
