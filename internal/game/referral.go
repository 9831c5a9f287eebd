package game

import "petfarm_webapp/internal/domain"

// BuildReferralLadder merges the level config with per-level active counts
// and earnings into the view the client renders. Level 1 is always unlocked;
// deeper levels unlock once the count of active level-1 referrals reaches
// the threshold.
func BuildReferralLadder(
	levels []domain.ReferralLevelConfig,
	counts map[int]int,
	earned map[int]domain.Money,
) []domain.ReferralLevelStats {
	activeDirect := counts[1]

	ladder := make([]domain.ReferralLevelStats, 0, len(levels))
	for _, lvl := range levels {
		ladder = append(ladder, domain.ReferralLevelStats{
			Level:           lvl.Level,
			Percent:         lvl.Percent,
			UnlockThreshold: lvl.UnlockThreshold,
			ReferralsCount:  counts[lvl.Level],
			Earned:          earned[lvl.Level].Round2(),
			Unlocked:        lvl.Level == 1 || activeDirect >= lvl.UnlockThreshold,
		})
	}
	return ladder
}

// CommissionFor computes the upline commission for a downstream claim at the
// given depth. Returns 0 when the level is locked for that upline or the
// depth exceeds the ladder.
func CommissionFor(
	levels []domain.ReferralLevelConfig,
	depth int,
	uplineActiveDirect int,
	claimed domain.Money,
) domain.Money {
	for _, lvl := range levels {
		if lvl.Level != depth {
			continue
		}
		if lvl.Level != 1 && uplineActiveDirect < lvl.UnlockThreshold {
			return 0
		}
		return domain.Money(claimed.Float64() * lvl.Percent / 100).Round2()
	}
	return 0
}
