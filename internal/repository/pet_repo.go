package repository

import (
	"context"
	"errors"

	"petfarm_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrPetNotFound = errors.New("pet not found")

type PetRepository struct {
	db *pgxpool.Pool
}

func NewPetRepository(db *pgxpool.Pool) *PetRepository {
	return &PetRepository{db: db}
}

const petColumns = `id, public_id, user_id, slot_index, pet_type_id, level, status,
	invested_total, profit_claimed, roi_boost, active_snack, training_ends_at, created_at`

func scanPet(row pgx.Row) (*domain.Pet, error) {
	var (
		p     domain.Pet
		snack *string
	)
	if err := row.Scan(
		&p.ID,
		&p.PublicID,
		&p.UserID,
		&p.SlotIndex,
		&p.PetTypeID,
		&p.Level,
		&p.Status,
		&p.InvestedTotal,
		&p.ProfitClaimed,
		&p.ROIBoost,
		&snack,
		&p.TrainingEndsAt,
		&p.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPetNotFound
		}
		return nil, err
	}
	if snack != nil {
		s := domain.SnackType(*snack)
		p.ActiveSnack = &s
	}
	return &p, nil
}

// ListActiveByUser returns the user's slot-occupying pets ordered by slot.
func (r *PetRepository) ListActiveByUser(ctx context.Context, userID int64) ([]*domain.Pet, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+petColumns+` FROM pets
		 WHERE user_id = $1 AND status NOT IN ('evolved', 'sold')
		 ORDER BY slot_index`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pets []*domain.Pet
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		pets = append(pets, p)
	}
	return pets, rows.Err()
}

// GetByPublicID fetches a pet by its opaque id, scoped to the owner.
func (r *PetRepository) GetByPublicID(ctx context.Context, userID int64, publicID string) (*domain.Pet, error) {
	return scanPet(r.db.QueryRow(ctx,
		`SELECT `+petColumns+` FROM pets WHERE user_id = $1 AND public_id = $2`,
		userID, publicID))
}

// LockByPublicID fetches the pet under FOR UPDATE inside the given tx so
// racing claims settle one at a time.
func (r *PetRepository) LockByPublicID(ctx context.Context, tx pgx.Tx, userID int64, publicID string) (*domain.Pet, error) {
	return scanPet(tx.QueryRow(ctx,
		`SELECT `+petColumns+` FROM pets WHERE user_id = $1 AND public_id = $2 FOR UPDATE`,
		userID, publicID))
}

// CountActiveSlots counts occupied slots for the user.
func (r *PetRepository) CountActiveSlots(ctx context.Context, tx pgx.Tx, userID int64) (int, error) {
	var n int
	err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM pets WHERE user_id = $1 AND status NOT IN ('evolved', 'sold')`,
		userID).Scan(&n)
	return n, err
}

// SlotOccupied reports whether the slot already holds an active pet.
func (r *PetRepository) SlotOccupied(ctx context.Context, tx pgx.Tx, userID int64, slotIndex int) (bool, error) {
	var occupied bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM pets
			WHERE user_id = $1 AND slot_index = $2 AND status NOT IN ('evolved', 'sold')
		)`,
		userID, slotIndex).Scan(&occupied)
	return occupied, err
}

// CreateWithTx inserts a freshly bought pet.
func (r *PetRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, p *domain.Pet) error {
	return tx.QueryRow(ctx,
		`INSERT INTO pets (public_id, user_id, slot_index, pet_type_id, level, status, invested_total)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, profit_claimed, roi_boost, created_at`,
		p.PublicID, p.UserID, p.SlotIndex, p.PetTypeID, p.Level, p.Status, p.InvestedTotal.String(),
	).Scan(&p.ID, &p.ProfitClaimed, &p.ROIBoost, &p.CreatedAt)
}

// UpdateWithTx persists the mutable lifecycle fields after a transition.
func (r *PetRepository) UpdateWithTx(ctx context.Context, tx pgx.Tx, p *domain.Pet) error {
	var snack *string
	if p.ActiveSnack != nil {
		s := string(*p.ActiveSnack)
		snack = &s
	}
	_, err := tx.Exec(ctx,
		`UPDATE pets
		 SET level = $1, status = $2, invested_total = $3, profit_claimed = $4,
		     roi_boost = $5, active_snack = $6, training_ends_at = $7
		 WHERE id = $8`,
		p.Level, p.Status, p.InvestedTotal.String(), p.ProfitClaimed.String(),
		p.ROIBoost, snack, p.TrainingEndsAt, p.ID)
	return err
}

// TrainingFinished identifies a pet whose training cycle just completed.
type TrainingFinished struct {
	UserID   int64
	PublicID string
}

// MarkTrainingFinished flips pets whose training elapsed to ready_to_claim
// and returns them, so each finished cycle is announced exactly once.
// SKIP LOCKED keeps the sweep from stalling behind a claim in flight.
func (r *PetRepository) MarkTrainingFinished(ctx context.Context, limit int) ([]TrainingFinished, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx,
		`UPDATE pets SET status = 'ready_to_claim'
		 WHERE id IN (
		   SELECT id FROM pets
		   WHERE status = 'training' AND training_ends_at <= now()
		   ORDER BY training_ends_at
		   LIMIT $1
		   FOR UPDATE SKIP LOCKED
		 )
		 RETURNING user_id, public_id`,
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var finished []TrainingFinished
	for rows.Next() {
		var f TrainingFinished
		if err := rows.Scan(&f.UserID, &f.PublicID); err != nil {
			return nil, err
		}
		finished = append(finished, f)
	}
	return finished, rows.Err()
}

// ListReadyForAutoClaim returns pets whose training elapsed for users with a
// live auto-claim subscription.
func (r *PetRepository) ListReadyForAutoClaim(ctx context.Context, limit int) ([]*domain.Pet, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+petColumnsPrefixed("p")+`
		 FROM pets p
		 WHERE (p.status = 'ready_to_claim'
			OR (p.status = 'training' AND p.training_ends_at <= now()))
		   AND EXISTS (
			SELECT 1 FROM auto_claim_subscriptions s
			WHERE s.user_id = p.user_id AND s.expires_at > now()
		 )
		 ORDER BY p.training_ends_at
		 LIMIT $1`,
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pets []*domain.Pet
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		pets = append(pets, p)
	}
	return pets, rows.Err()
}

func petColumnsPrefixed(alias string) string {
	return alias + `.id, ` + alias + `.public_id, ` + alias + `.user_id, ` + alias + `.slot_index, ` +
		alias + `.pet_type_id, ` + alias + `.level, ` + alias + `.status, ` + alias + `.invested_total, ` +
		alias + `.profit_claimed, ` + alias + `.roi_boost, ` + alias + `.active_snack, ` +
		alias + `.training_ends_at, ` + alias + `.created_at`
}
