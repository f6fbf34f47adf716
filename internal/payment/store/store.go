package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kushtati/kushtati-immo/internal/payment"
)

// Store persists the ledger in PostgreSQL.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, period, amount_due, due_date, status, paid_date, method, transaction_id
const selectRecordColumns = `id, period, amount_due, due_date, status, paid_date, method, transaction_id`

func scanRecord(s scanner) (*payment.Record, error) {
	var (
		r         payment.Record
		statusStr string
		paidDate  sql.NullTime
		method    sql.NullString
		txID      sql.NullString
	)

	if err := s.Scan(&r.ID, &r.Period, &r.AmountDue, &r.DueDate, &statusStr, &paidDate, &method, &txID); err != nil {
		return nil, err
	}

	r.Status = payment.Status(statusStr)
	r.Method = payment.Method(method.String)
	r.TransactionID = txID.String

	if paidDate.Valid {
		r.PaidDate = new(paidDate.Time)
	}

	return &r, nil
}

func (s *Store) ListRecords(ctx context.Context) ([]*payment.Record, error) {
	query := `SELECT ` + selectRecordColumns + `
		FROM payment_records
		ORDER BY position ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	var records []*payment.Record

	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}

		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}

	return records, nil
}

func (s *Store) GetRecord(ctx context.Context, id uuid.UUID) (*payment.Record, error) {
	query := `SELECT ` + selectRecordColumns + ` FROM payment_records WHERE id = $1`

	r, err := scanRecord(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payment.ErrNotFound
		}

		return nil, fmt.Errorf("getting record: %w", err)
	}

	return r, nil
}

func (s *Store) CreateRecords(ctx context.Context, records []*payment.Record) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO payment_records (id, period, amount_due, due_date, status, paid_date, method, transaction_id)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''))
	`

	for _, r := range records {
		if _, err := dbTx.ExecContext(ctx, query,
			r.ID,
			r.Period,
			r.AmountDue,
			r.DueDate,
			r.Status,
			r.PaidDate,
			string(r.Method),
			r.TransactionID,
		); err != nil {
			return fmt.Errorf("creating record %s: %w", r.ID, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// MarkPaid only updates a pending row, so two concurrent payments of the same
// period cannot both succeed.
func (s *Store) MarkPaid(ctx context.Context, id uuid.UUID, fields payment.PaidFields) (*payment.Record, error) {
	query := `
		UPDATE payment_records
		SET status = 'paid', paid_date = $1, method = $2, transaction_id = $3, updated_at = NOW()
		WHERE id = $4 AND status = 'pending'
		RETURNING ` + selectRecordColumns

	r, err := scanRecord(s.db.QueryRowContext(ctx, query, fields.PaidDate, string(fields.Method), fields.TransactionID, id))
	if err == nil {
		return r, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("marking record paid: %w", err)
	}

	existing, err := s.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	return existing, payment.ErrAlreadyPaid
}
