package ws

// Event is the envelope for every server → client push.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Event types.
const (
	EventPetClaimed       = "pet_claimed"
	EventTrainingFinished = "training_finished"
	EventBalanceChanged   = "balance_changed"
)
