package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kushtati/kushtati-immo/internal/payment"
)

var recordColumns = []string{"id", "period", "amount_due", "due_date", "status", "paid_date", "method", "transaction_id"}

const (
	markPaidQuery  = `UPDATE payment_records SET status = 'paid'`
	getRecordQuery = `SELECT .* FROM payment_records WHERE id = \$1`
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	return New(db), mock
}

func TestStore_MarkPaid(t *testing.T) {
	id := uuid.New()
	dueDate := payment.Date(2024, time.December, 5)
	paidDate := payment.Date(2024, time.December, 10)
	fields := payment.PaidFields{
		PaidDate:      paidDate,
		Method:        payment.MethodCash,
		TransactionID: "TX-1733841000000-ESPECES",
	}

	paidRow := func() *sqlmock.Rows {
		return sqlmock.NewRows(recordColumns).
			AddRow(id.String(), "Décembre 2024", int64(3_500_000), dueDate, "paid", paidDate, "especes", "TX-1733841000000-ESPECES")
	}

	t.Run("Pending", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery(markPaidQuery).
			WithArgs(paidDate, "especes", fields.TransactionID, id).
			WillReturnRows(paidRow())

		r, err := s.MarkPaid(context.Background(), id, fields)
		require.NoError(t, err)
		assert.Equal(t, payment.StatusPaid, r.Status)
		assert.Equal(t, payment.MethodCash, r.Method)
		assert.Equal(t, fields.TransactionID, r.TransactionID)
		require.NotNil(t, r.PaidDate)
		assert.True(t, paidDate.Equal(*r.PaidDate))
	})

	t.Run("AlreadyPaid", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery(markPaidQuery).
			WithArgs(paidDate, "mtn", "TX-1733900000000-MTN", id).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(getRecordQuery).
			WithArgs(id).
			WillReturnRows(paidRow())

		r, err := s.MarkPaid(context.Background(), id, payment.PaidFields{
			PaidDate:      paidDate,
			Method:        payment.MethodMTNMoney,
			TransactionID: "TX-1733900000000-MTN",
		})
		require.ErrorIs(t, err, payment.ErrAlreadyPaid)
		require.NotNil(t, r)
		assert.Equal(t, payment.MethodCash, r.Method)
		assert.Equal(t, "TX-1733841000000-ESPECES", r.TransactionID)
	})

	t.Run("NotFound", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery(markPaidQuery).
			WithArgs(paidDate, "especes", fields.TransactionID, id).
			WillReturnRows(sqlmock.NewRows(recordColumns))
		mock.ExpectQuery(getRecordQuery).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(recordColumns))

		r, err := s.MarkPaid(context.Background(), id, fields)
		require.ErrorIs(t, err, payment.ErrNotFound)
		assert.Nil(t, r)
	})

	t.Run("QueryFailure", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery(markPaidQuery).
			WithArgs(paidDate, "especes", fields.TransactionID, id).
			WillReturnError(errors.New("connection reset"))

		r, err := s.MarkPaid(context.Background(), id, fields)
		require.Error(t, err)
		assert.ErrorContains(t, err, "marking record paid")
		assert.Nil(t, r)
	})
}
