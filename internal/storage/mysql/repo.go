package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	driver "github.com/go-sql-driver/mysql"

	"hotel_booking/internal/domain"
)

const errDupEntry = 1062

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// ---- hotels ----

func (r *Repo) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	doc, err := json.Marshal(h)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, upsertHotelSQL,
		h.ID,
		h.Name,
		h.Location.City,
		h.Location.Country,
		string(h.PropertyType),
		h.StarRating,
		h.PricePerNight,
		string(doc),
	)
	return err
}

// LoadAll returns the catalog in seed order.
func (r *Repo) LoadAll(ctx context.Context) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, listHotelsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Hotel
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var h domain.Hotel
		if err := json.Unmarshal(doc, &h); err != nil {
			return nil, fmt.Errorf("hotel doc: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// ---- bookings ----

func (r *Repo) Insert(ctx context.Context, b domain.Booking) error {
	guest, _ := json.Marshal(b.GuestDetails)
	price, _ := json.Marshal(b.PriceBreakdown)
	_, err := r.db.ExecContext(ctx, insertBookingSQL,
		b.ID,
		b.UserID,
		b.HotelID,
		b.HotelName,
		b.HotelImage,
		b.RoomID,
		b.RoomName,
		b.CheckIn,
		b.CheckOut,
		b.Guests,
		string(guest),
		string(price),
		string(b.Status),
		b.CreatedAt,
	)
	var me *driver.MySQLError
	if errors.As(err, &me) && me.Number == errDupEntry {
		return fmt.Errorf("booking %q: %w", b.ID, domain.ErrDuplicateID)
	}
	return err
}

func (r *Repo) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, listBookingsByUserSQL, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) Get(ctx context.Context, id string) (domain.Booking, bool, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, getBookingSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Booking{}, false, nil
	}
	if err != nil {
		return domain.Booking{}, false, err
	}
	return b, true, nil
}

// SetStatus locks the row before writing so concurrent cancels serialize.
func (r *Repo) SetStatus(ctx context.Context, id string, st domain.BookingStatus) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var cur string
	if err := tx.QueryRowContext(ctx, lockBookingSQL, id).Scan(&cur); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	if cur != string(st) {
		if _, err := tx.ExecContext(ctx, updateStatusSQL, string(st), id); err != nil {
			return false, err
		}
	}
	return true, tx.Commit()
}

type scanner interface{ Scan(dest ...any) error }

// scanBooking decodes one row; unreadable JSON columns degrade to zero values.
func scanBooking(s scanner) (domain.Booking, error) {
	var (
		b            domain.Booking
		status       string
		guest, price []byte
	)
	if err := s.Scan(
		&b.ID,
		&b.UserID,
		&b.HotelID,
		&b.HotelName,
		&b.HotelImage,
		&b.RoomID,
		&b.RoomName,
		&b.CheckIn,
		&b.CheckOut,
		&b.Guests,
		&guest,
		&price,
		&status,
		&b.CreatedAt,
	); err != nil {
		return domain.Booking{}, err
	}
	_ = json.Unmarshal(guest, &b.GuestDetails)
	_ = json.Unmarshal(price, &b.PriceBreakdown)
	b.Status = domain.BookingStatus(status)
	b.CreatedAt = b.CreatedAt.UTC()
	return b, nil
}
