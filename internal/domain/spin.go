package domain

// SpinRewardType discriminates wheel segments.
type SpinRewardType string

const (
	SpinRewardAmount  SpinRewardType = "amount"
	SpinRewardNothing SpinRewardType = "nothing"
)

// SpinSegment is one wedge of the wheel. Weights are server-only; the client
// receives segments without probabilities and animates to the returned index.
type SpinSegment struct {
	ID         int            `json:"id"`
	RewardType SpinRewardType `json:"reward_type"`
	Amount     Money          `json:"amount"`
	Label      string         `json:"label"`
	Color      string         `json:"color"`
	Emoji      string         `json:"emoji"`
	Weight     int            `json:"-"`
}
