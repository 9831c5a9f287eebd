package domain

import "time"

// Transaction is one signed entry in the balance journal. Every
// balance-affecting action writes exactly one row inside the same database
// transaction that moves the balance.
type Transaction struct {
	ID        int64                  `db:"id" json:"id"`
	UserID    int64                  `db:"user_id" json:"user_id"`
	Type      string                 `db:"type" json:"type"`
	Amount    Money                  `db:"amount" json:"amount"`
	Meta      map[string]interface{} `db:"meta" json:"meta,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}

// Journal entry types.
const (
	TxBuyPet             = "buy_pet"
	TxClaim              = "claim"
	TxAutoClaim          = "auto_claim"
	TxUpgrade            = "upgrade"
	TxSellRefund         = "sell_refund"
	TxSnack              = "snack"
	TxROIBoost           = "roi_boost"
	TxAutoClaimPurchase  = "auto_claim_purchase"
	TxSpinCost           = "spin_cost"
	TxSpinWin            = "spin_win"
	TxTaskReward         = "task_reward"
	TxReferralCommission = "referral_commission"
)
