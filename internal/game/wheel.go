package game

import (
	"crypto/rand"
	"math/big"
	"time"

	"petfarm_webapp/internal/domain"
)

// Wheel is the spin-wheel configuration plus the result of the last draw.
// The draw happens entirely server-side; clients only animate to the index.
type Wheel struct {
	Segments     []domain.SpinSegment
	WinningIndex int
	SpinAngle    float64
}

// FreeSpinWindow is the rolling window granting one free spin.
const FreeSpinWindow = 24 * time.Hour

// DefaultSegments is the seed wheel; the DB-stored wheel is authoritative.
func DefaultSegments() []domain.SpinSegment {
	return []domain.SpinSegment{
		{ID: 1, RewardType: domain.SpinRewardNothing, Amount: 0, Label: "Nothing", Color: "#4a4a4a", Emoji: "💨", Weight: 300},
		{ID: 2, RewardType: domain.SpinRewardAmount, Amount: 1, Label: "1", Color: "#e74c3c", Emoji: "🪙", Weight: 250},
		{ID: 3, RewardType: domain.SpinRewardAmount, Amount: 2, Label: "2", Color: "#f39c12", Emoji: "🪙", Weight: 200},
		{ID: 4, RewardType: domain.SpinRewardAmount, Amount: 5, Label: "5", Color: "#2ecc71", Emoji: "💰", Weight: 130},
		{ID: 5, RewardType: domain.SpinRewardAmount, Amount: 10, Label: "10", Color: "#3498db", Emoji: "💰", Weight: 70},
		{ID: 6, RewardType: domain.SpinRewardAmount, Amount: 25, Label: "25", Color: "#9b59b6", Emoji: "💎", Weight: 35},
		{ID: 7, RewardType: domain.SpinRewardAmount, Amount: 50, Label: "50", Color: "#e67e22", Emoji: "💎", Weight: 10},
		{ID: 8, RewardType: domain.SpinRewardAmount, Amount: 100, Label: "100", Color: "#f1c40f", Emoji: "🏆", Weight: 5},
	}
}

// NewWheel builds a wheel; empty segments fall back to the defaults.
func NewWheel(segments []domain.SpinSegment) *Wheel {
	if len(segments) == 0 {
		segments = DefaultSegments()
	}
	return &Wheel{Segments: segments, WinningIndex: -1}
}

func (w *Wheel) totalWeight() int64 {
	var total int64
	for _, s := range w.Segments {
		if s.Weight > 0 {
			total += int64(s.Weight)
		}
	}
	return total
}

// Spin draws the winning segment with crypto/rand over the weight table and
// computes the final animation angle for the client.
func (w *Wheel) Spin() domain.SpinSegment {
	total := w.totalWeight()
	if total <= 0 {
		w.WinningIndex = 0
		return w.Segments[0]
	}

	n, err := rand.Int(rand.Reader, big.NewInt(total))
	if err != nil {
		n = big.NewInt(total / 2)
	}

	roll := n.Int64()
	var cumulative int64
	w.WinningIndex = len(w.Segments) - 1
	for i, s := range w.Segments {
		if s.Weight <= 0 {
			continue
		}
		cumulative += int64(s.Weight)
		if roll < cumulative {
			w.WinningIndex = i
			break
		}
	}

	// Land the pointer inside the winning wedge after a few full rotations.
	segmentAngle := 360.0 / float64(len(w.Segments))
	baseAngle := float64(w.WinningIndex) * segmentAngle

	offsetMax := big.NewInt(int64(segmentAngle * 100))
	offsetN, _ := rand.Int(rand.Reader, offsetMax)
	offset := float64(offsetN.Int64()) / 100.0

	const rotations = 5
	w.SpinAngle = float64(rotations*360) + baseAngle + offset

	return w.Segments[w.WinningIndex]
}

// AmountWon is the balance credit of the last draw, 0 for "nothing".
func (w *Wheel) AmountWon() domain.Money {
	if w.WinningIndex < 0 || w.WinningIndex >= len(w.Segments) {
		return 0
	}
	seg := w.Segments[w.WinningIndex]
	if seg.RewardType != domain.SpinRewardAmount {
		return 0
	}
	return seg.Amount.Round2()
}

// CanFreeSpin reports whether the rolling free-spin window has elapsed.
// A nil lastFreeSpin means the user never spun for free.
func CanFreeSpin(lastFreeSpin *time.Time, now time.Time) bool {
	if lastFreeSpin == nil {
		return true
	}
	return !now.Before(lastFreeSpin.Add(FreeSpinWindow))
}

// NextFreeSpinAt returns when the next free spin unlocks; zero time when it
// is available already.
func NextFreeSpinAt(lastFreeSpin *time.Time, now time.Time) time.Time {
	if CanFreeSpin(lastFreeSpin, now) {
		return time.Time{}
	}
	return lastFreeSpin.Add(FreeSpinWindow)
}

// ExpectedValue is the mean payout of one spin, used by ops dashboards to
// sanity-check wheel edits.
func (w *Wheel) ExpectedValue() float64 {
	total := w.totalWeight()
	if total <= 0 {
		return 0
	}
	var ev float64
	for _, s := range w.Segments {
		if s.RewardType == domain.SpinRewardAmount && s.Weight > 0 {
			ev += s.Amount.Float64() * float64(s.Weight) / float64(total)
		}
	}
	return ev
}
