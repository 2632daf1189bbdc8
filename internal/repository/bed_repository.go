package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bedbook/internal/domain"
	"github.com/spec-kit/bedbook/internal/persistence"
)

// BedRepository manages bed persistence and the booking transition.
type BedRepository interface {
	// CreateBatch inserts count beds of one type in a single transaction.
	// It returns pgx.ErrNoRows when the hospital does not exist.
	CreateBatch(ctx context.Context, hospitalID int64, bedType string, count int) ([]domain.Bed, error)
	GetByID(ctx context.Context, id int64) (*domain.Bed, error)
	ListByHospital(ctx context.Context, hospitalID int64) ([]domain.Bed, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Bed, error)
	// Book marks an available bed as booked by userID at the given time.
	// It returns pgx.ErrNoRows for an unknown bed and ErrBedUnavailable when
	// the bed was already booked.
	Book(ctx context.Context, bedID, userID int64, at time.Time) (*domain.Bed, error)
}

const bedColumns = `id, hospital_id, bed_type, available, booked_by, booking_time, created_at`

type bedRepository struct {
	db persistence.DB
}

// NewBedRepository builds the repository.
func NewBedRepository(db persistence.DB) BedRepository {
	return &bedRepository{db: db}
}

func (r *bedRepository) CreateBatch(ctx context.Context, hospitalID int64, bedType string, count int) ([]domain.Bed, error) {
	const lockHospital = `SELECT id FROM hospitals WHERE id=$1 FOR SHARE`
	const insertBeds = `
        INSERT INTO beds (hospital_id, bed_type)
        SELECT $1, $2 FROM generate_series(1, $3)
        RETURNING ` + bedColumns

	var beds []domain.Bed
	err := persistence.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var id int64
		if err := tx.QueryRow(ctx, lockHospital, hospitalID).Scan(&id); err != nil {
			return err
		}

		rows, err := tx.Query(ctx, insertBeds, hospitalID, bedType, count)
		if err != nil {
			return err
		}
		defer rows.Close()

		beds, err = collectBeds(rows)
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || hasPgCode(err, pgForeignKeyViolation) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("insert beds: %w", err)
	}
	sort.Slice(beds, func(i, j int) bool { return beds[i].ID < beds[j].ID })
	return beds, nil
}

func (r *bedRepository) GetByID(ctx context.Context, id int64) (*domain.Bed, error) {
	const query = `SELECT ` + bedColumns + ` FROM beds WHERE id=$1`

	bed, err := scanBed(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return &bed, nil
}

func (r *bedRepository) ListByHospital(ctx context.Context, hospitalID int64) ([]domain.Bed, error) {
	const query = `SELECT ` + bedColumns + ` FROM beds WHERE hospital_id=$1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("list beds by hospital: %w", err)
	}
	defer rows.Close()
	return collectBeds(rows)
}

func (r *bedRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Bed, error) {
	const query = `SELECT ` + bedColumns + ` FROM beds WHERE booked_by=$1 ORDER BY booking_time, id`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list beds by user: %w", err)
	}
	defer rows.Close()
	return collectBeds(rows)
}

func (r *bedRepository) Book(ctx context.Context, bedID, userID int64, at time.Time) (*domain.Bed, error) {
	const book = `
        UPDATE beds SET available=FALSE, booked_by=$2, booking_time=$3
        WHERE id=$1 AND available=TRUE
        RETURNING ` + bedColumns
	const exists = `SELECT EXISTS (SELECT 1 FROM beds WHERE id=$1)`

	bed, err := scanBed(r.db.QueryRow(ctx, book, bedID, userID, at))
	if err == nil {
		return &bed, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("book bed: %w", err)
	}

	var found bool
	if err := r.db.QueryRow(ctx, exists, bedID).Scan(&found); err != nil {
		return nil, fmt.Errorf("probe bed: %w", err)
	}
	if !found {
		return nil, pgx.ErrNoRows
	}
	return nil, ErrBedUnavailable
}

func scanBed(row pgx.Row) (domain.Bed, error) {
	var bed domain.Bed
	err := row.Scan(
		&bed.ID,
		&bed.HospitalID,
		&bed.BedType,
		&bed.Available,
		&bed.BookedBy,
		&bed.BookingTime,
		&bed.CreatedAt,
	)
	return bed, err
}

func collectBeds(rows pgx.Rows) ([]domain.Bed, error) {
	beds := []domain.Bed{}
	for rows.Next() {
		bed, err := scanBed(rows)
		if err != nil {
			return nil, err
		}
		beds = append(beds, bed)
	}
	return beds, rows.Err()
}
