package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/airline-ops/schedule-search-service/internal/domain"
	"github.com/airline-ops/schedule-search-service/internal/infrastructure/retry"
)

// SeatInventory reads aircraft capacity and sold-ticket counts.
type SeatInventory struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewSeatInventory(db *pgxpool.Pool) *SeatInventory {
	return &SeatInventory{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// AircraftCapacity returns the total seat count of an aircraft.
func (s *SeatInventory) AircraftCapacity(ctx context.Context, aircraftID int64) (int, error) {
	query := s.sb.
		Select("totalseats").
		From("aircrafts").
		Where(sq.Eq{"id": aircraftID})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build aircraft capacity sql: %w", err)
	}

	return retry.DoWithResult(ctx, func() (int, error) {
		var seats int
		if err := s.db.QueryRow(ctx, sqlStr, args...).Scan(&seats); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return 0, retry.NewPermanent(fmt.Errorf("%w: aircraft %d", domain.ErrNotFound, aircraftID))
			}
			return 0, fmt.Errorf("aircraft capacity: %w", err)
		}
		return seats, nil
	}, retry.StorageConfig)
}

// BookedCount returns the number of tickets already sold for a leg.
func (s *SeatInventory) BookedCount(ctx context.Context, legID int64) (int, error) {
	query := s.sb.
		Select("COUNT(*)").
		From("tickets").
		Where(sq.Eq{"scheduleid": legID})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build booked count sql: %w", err)
	}

	return retry.DoWithResult(ctx, func() (int, error) {
		var count int
		if err := s.db.QueryRow(ctx, sqlStr, args...).Scan(&count); err != nil {
			return 0, fmt.Errorf("booked count: %w", err)
		}
		return count, nil
	}, retry.StorageConfig)
}
