package repository

import (
	"context"
	"errors"

	"petfarm_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrPetTypeNotFound = errors.New("pet type not found")

type PetTypeRepository struct {
	db *pgxpool.Pool
}

func NewPetTypeRepository(db *pgxpool.Pool) *PetTypeRepository {
	return &PetTypeRepository{db: db}
}

func scanPetType(row pgx.Row) (*domain.PetType, error) {
	var (
		pt          domain.PetType
		adultPrice  domain.Money
		mythicPrice domain.Money
	)
	if err := row.Scan(
		&pt.ID,
		&pt.Name,
		&pt.BasePrice,
		&pt.DailyRate,
		&pt.ROICapMultiplier,
		&adultPrice,
		&mythicPrice,
		&pt.IsActive,
		&pt.Emoji,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPetTypeNotFound
		}
		return nil, err
	}
	pt.UpgradePrices = map[domain.PetLevel]domain.Money{
		domain.LevelAdult:  adultPrice,
		domain.LevelMythic: mythicPrice,
	}
	return &pt, nil
}

const petTypeColumns = `id, name, base_price, daily_rate, roi_cap_multiplier,
	adult_price, mythic_price, is_active, COALESCE(emoji, '')`

// ListActive returns the purchasable catalog.
func (r *PetTypeRepository) ListActive(ctx context.Context) ([]*domain.PetType, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+petTypeColumns+` FROM pet_types WHERE is_active ORDER BY base_price`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []*domain.PetType
	for rows.Next() {
		pt, err := scanPetType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, pt)
	}
	return types, rows.Err()
}

// GetByID resolves a catalog entry regardless of its active flag, since
// existing pets keep referencing retired versions.
func (r *PetTypeRepository) GetByID(ctx context.Context, id int64) (*domain.PetType, error) {
	return scanPetType(r.db.QueryRow(ctx,
		`SELECT `+petTypeColumns+` FROM pet_types WHERE id = $1`, id))
}
