package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/airline-ops/schedule-search-service/internal/domain"
	"github.com/airline-ops/schedule-search-service/internal/infrastructure/retry"
)

// legColumns is the shared select list for reading a flight leg with its
// route's airport codes resolved. The price is cast to text so it can be
// scanned into a decimal without floating-point loss.
var legColumns = []string{
	"s.id",
	"s.flightnumber",
	"dep.iatacode AS departure_airport",
	"arr.iatacode AS arrival_airport",
	"s.date",
	"s.flighttime",
	"s.economyprice::text",
	"s.aircraftid",
	"s.confirmed",
}

const legJoins = `schedules s
JOIN routes r ON r.id = s.routeid
JOIN airports dep ON dep.id = r.departureairportid
JOIN airports arr ON arr.id = r.arrivalairportid`

// ScheduleRepository reads and writes flight legs in PostgreSQL. It
// implements both domain.LegRepository and domain.LegStore.
type ScheduleRepository struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewScheduleRepository(db *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// FindLegs returns scheduled legs matching the filter. Date windows are
// half-open: DateFrom inclusive, DateTo exclusive.
func (r *ScheduleRepository) FindLegs(ctx context.Context, filter domain.LegFilter) ([]domain.FlightLeg, error) {
	query := r.sb.
		Select(legColumns...).
		From(legJoins)

	if filter.ID != nil {
		query = query.Where(sq.Eq{"s.id": *filter.ID})
	}
	if filter.DepartureAirport != "" {
		query = query.Where(sq.Eq{"dep.iatacode": filter.DepartureAirport})
	}
	if filter.ArrivalAirport != "" {
		query = query.Where(sq.Eq{"arr.iatacode": filter.ArrivalAirport})
	}
	if filter.FlightNumber != "" {
		query = query.Where(sq.Eq{"s.flightnumber": filter.FlightNumber})
	}
	if filter.DateFrom != nil {
		query = query.Where(sq.GtOrEq{"s.date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		query = query.Where(sq.Lt{"s.date": *filter.DateTo})
	}
	query = query.OrderBy(orderClause(filter.SortBy))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find legs sql: %w", err)
	}

	return retry.DoWithResult(ctx, func() ([]domain.FlightLeg, error) {
		rows, err := r.db.Query(ctx, sqlStr, args...)
		if err != nil {
			return nil, fmt.Errorf("query legs: %w", err)
		}
		defer rows.Close()

		var legs []domain.FlightLeg
		for rows.Next() {
			leg, err := scanLeg(rows)
			if err != nil {
				return nil, retry.NewPermanent(err)
			}
			legs = append(legs, leg)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate legs: %w", err)
		}
		return legs, nil
	}, retry.StorageConfig)
}

// CreateLeg inserts a schedule row, resolving the route from the airport
// pair. An unknown airport pair is an invalid request, not a storage error.
func (r *ScheduleRepository) CreateLeg(ctx context.Context, leg domain.FlightLeg) (domain.FlightLeg, error) {
	routeID, err := r.resolveRoute(ctx, leg.DepartureAirport, leg.ArrivalAirport)
	if err != nil {
		return domain.FlightLeg{}, err
	}

	query := r.sb.
		Insert("schedules").
		Columns("date", "flighttime", "flightnumber", "economyprice", "confirmed", "aircraftid", "routeid").
		Values(leg.DepartureTime, leg.FlightDurationMinutes, leg.FlightNumber, leg.BasePrice.String(), leg.Confirmed, leg.AircraftID, routeID).
		Suffix("RETURNING id")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return domain.FlightLeg{}, fmt.Errorf("build create leg sql: %w", err)
	}

	id, err := retry.DoWithResult(ctx, func() (int64, error) {
		var id int64
		if err := r.db.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("insert leg: %w", err)
		}
		return id, nil
	}, retry.StorageConfig)
	if err != nil {
		return domain.FlightLeg{}, err
	}

	leg.ID = id
	return leg, nil
}

// GetLeg returns a single schedule by id, or domain.ErrNotFound.
func (r *ScheduleRepository) GetLeg(ctx context.Context, id int64) (domain.FlightLeg, error) {
	query := r.sb.
		Select(legColumns...).
		From(legJoins).
		Where(sq.Eq{"s.id": id})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return domain.FlightLeg{}, fmt.Errorf("build get leg sql: %w", err)
	}

	return retry.DoWithResult(ctx, func() (domain.FlightLeg, error) {
		leg, err := scanLeg(r.db.QueryRow(ctx, sqlStr, args...))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.FlightLeg{}, retry.NewPermanent(fmt.Errorf("%w: schedule %d", domain.ErrNotFound, id))
			}
			return domain.FlightLeg{}, err
		}
		return leg, nil
	}, retry.StorageConfig)
}

// UpdateLeg overwrites a schedule's mutable fields. The route is
// re-resolved when the airport pair changed.
func (r *ScheduleRepository) UpdateLeg(ctx context.Context, leg domain.FlightLeg) (domain.FlightLeg, error) {
	routeID, err := r.resolveRoute(ctx, leg.DepartureAirport, leg.ArrivalAirport)
	if err != nil {
		return domain.FlightLeg{}, err
	}

	query := r.sb.
		Update("schedules").
		Set("date", leg.DepartureTime).
		Set("flighttime", leg.FlightDurationMinutes).
		Set("flightnumber", leg.FlightNumber).
		Set("economyprice", leg.BasePrice.String()).
		Set("confirmed", leg.Confirmed).
		Set("aircraftid", leg.AircraftID).
		Set("routeid", routeID).
		Where(sq.Eq{"id": leg.ID})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return domain.FlightLeg{}, fmt.Errorf("build update leg sql: %w", err)
	}

	if err := r.execExpectingRow(ctx, sqlStr, args, leg.ID); err != nil {
		return domain.FlightLeg{}, err
	}
	return leg, nil
}

// SetConfirmed flips a schedule's confirmed flag and returns the updated leg.
func (r *ScheduleRepository) SetConfirmed(ctx context.Context, id int64, confirmed bool) (domain.FlightLeg, error) {
	query := r.sb.
		Update("schedules").
		Set("confirmed", confirmed).
		Where(sq.Eq{"id": id})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return domain.FlightLeg{}, fmt.Errorf("build set confirmed sql: %w", err)
	}

	if err := r.execExpectingRow(ctx, sqlStr, args, id); err != nil {
		return domain.FlightLeg{}, err
	}
	return r.GetLeg(ctx, id)
}

// DeleteLeg removes a schedule, returning domain.ErrNotFound when the id
// does not exist.
func (r *ScheduleRepository) DeleteLeg(ctx context.Context, id int64) error {
	query := r.sb.
		Delete("schedules").
		Where(sq.Eq{"id": id})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build delete leg sql: %w", err)
	}

	return r.execExpectingRow(ctx, sqlStr, args, id)
}

// execExpectingRow runs a statement that must touch exactly one schedule
// row, mapping zero affected rows to domain.ErrNotFound.
func (r *ScheduleRepository) execExpectingRow(ctx context.Context, sqlStr string, args []any, id int64) error {
	return retry.Do(ctx, func() error {
		tag, err := r.db.Exec(ctx, sqlStr, args...)
		if err != nil {
			return fmt.Errorf("exec schedule statement: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return retry.NewPermanent(fmt.Errorf("%w: schedule %d", domain.ErrNotFound, id))
		}
		return nil
	}, retry.StorageConfig)
}

// resolveRoute looks up the route id for an airport pair.
func (r *ScheduleRepository) resolveRoute(ctx context.Context, departure, arrival string) (int64, error) {
	query := r.sb.
		Select("r.id").
		From("routes r").
		Join("airports dep ON dep.id = r.departureairportid").
		Join("airports arr ON arr.id = r.arrivalairportid").
		Where(sq.Eq{"dep.iatacode": departure, "arr.iatacode": arrival})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build resolve route sql: %w", err)
	}

	return retry.DoWithResult(ctx, func() (int64, error) {
		var id int64
		if err := r.db.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return 0, retry.NewPermanent(fmt.Errorf("%w: no route %s-%s", domain.ErrInvalidRequest, departure, arrival))
			}
			return 0, fmt.Errorf("resolve route: %w", err)
		}
		return id, nil
	}, retry.StorageConfig)
}

// scanLeg reads one leg row in legColumns order.
func scanLeg(row pgx.Row) (domain.FlightLeg, error) {
	var (
		leg      domain.FlightLeg
		priceStr string
	)
	err := row.Scan(
		&leg.ID,
		&leg.FlightNumber,
		&leg.DepartureAirport,
		&leg.ArrivalAirport,
		&leg.DepartureTime,
		&leg.FlightDurationMinutes,
		&priceStr,
		&leg.AircraftID,
		&leg.Confirmed,
	)
	if err != nil {
		return domain.FlightLeg{}, err
	}

	leg.BasePrice, err = decimal.NewFromString(priceStr)
	if err != nil {
		return domain.FlightLeg{}, fmt.Errorf("parse leg price %q: %w", priceStr, err)
	}
	return leg, nil
}

func orderClause(sortBy domain.SortOption) string {
	switch sortBy {
	case domain.SortByPrice:
		return "s.economyprice ASC, s.date ASC"
	case domain.SortByConfirmed:
		return "s.confirmed DESC, s.date ASC"
	default:
		return "s.date ASC, s.id ASC"
	}
}
