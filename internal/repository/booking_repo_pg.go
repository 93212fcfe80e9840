package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/pestbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrBookingNotFound = errors.New("booking not found")

// DBTX is the subset of pgxpool.Pool the repository needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByToken(ctx context.Context, token string) (*domain.Booking, error)
}

type PGBookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) BookingRepository {
	return &PGBookingRepository{db: db}
}

// Create inserts booking and fills its id and creation time.
func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	rec := booking.Record
	err := r.db.QueryRow(ctx, `INSERT INTO bookings
		(token, slug, prenom, nom, societe, email, telephone, adresse, ville, code_postal, date_rdv, heure_rdv, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::date, $12, $13)
		RETURNING id, created_at`,
		booking.Token, rec.Slug, rec.FirstName, rec.LastName, rec.Company, rec.Email, rec.Phone,
		rec.Street, rec.City, rec.PostalCode, rec.Date, rec.Time, string(booking.Status)).
		Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *PGBookingRepository) GetByToken(ctx context.Context, token string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT id, token, slug, prenom, nom, societe, email, telephone,
		adresse, ville, code_postal, date_rdv::text, heure_rdv, status, created_at
		FROM bookings WHERE token=$1`, token)

	var (
		b      domain.Booking
		status string
	)
	rec := &b.Record
	if err := row.Scan(&b.ID, &b.Token, &rec.Slug, &rec.FirstName, &rec.LastName, &rec.Company, &rec.Email,
		&rec.Phone, &rec.Street, &rec.City, &rec.PostalCode, &rec.Date, &rec.Time, &status, &b.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	b.Status = domain.BookingStatus(status)
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
