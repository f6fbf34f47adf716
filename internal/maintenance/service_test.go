package maintenance_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kushtati/kushtati-immo/internal/maintenance"
)

func newService(t *testing.T) *maintenance.Service {
	t.Helper()

	clock := func() time.Time { return time.Date(2024, 12, 10, 16, 0, 0, 0, time.UTC) }
	svc := maintenance.NewService(maintenance.NewMemory(), clock)
	require.NoError(t, svc.Seed(context.Background(), maintenance.TenantRequests()))

	return svc
}

func TestService_PendingCount(t *testing.T) {
	svc := newService(t)

	n, err := svc.PendingCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestService_List_MostRecentFirst(t *testing.T) {
	svc := newService(t)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Problème de climatisation", list[0].Title)
	assert.Equal(t, "Ampoule grillée dans le couloir", list[2].Title)
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name    string
		params  maintenance.CreateParams
		wantErr bool
	}

	tests := []testCase{
		{
			name:   "Success",
			params: maintenance.CreateParams{Title: "Serrure bloquée", Priority: maintenance.PriorityHigh},
		},
		{
			name:    "MissingTitle",
			params:  maintenance.CreateParams{Priority: maintenance.PriorityHigh},
			wantErr: true,
		},
		{
			name:    "UnknownPriority",
			params:  maintenance.CreateParams{Title: "Serrure", Priority: "urgente"},
			wantErr: true,
		},
		{
			name:    "NegativeCost",
			params:  maintenance.CreateParams{Title: "Serrure", Priority: maintenance.PriorityLow, Cost: -1},
			wantErr: true,
		},
		{
			name:    "TitleTooLong",
			params:  maintenance.CreateParams{Title: strings.Repeat("a", 121), Priority: maintenance.PriorityLow},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t)

			got, err := svc.Create(context.Background(), tt.params)
			if tt.wantErr {
				assert.ErrorIs(t, err, maintenance.ErrInvalid)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, maintenance.StatusPending, got.Status)
			assert.Equal(t, time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC), got.Date)

			n, err := svc.PendingCount(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 3, n)
		})
	}
}

func TestService_UpdateStatus(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	list, err := svc.List(ctx)
	require.NoError(t, err)

	got, err := svc.UpdateStatus(ctx, list[0].ID, maintenance.StatusResolved)
	require.NoError(t, err)
	assert.Equal(t, maintenance.StatusResolved, got.Status)

	n, err := svc.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = svc.UpdateStatus(ctx, uuid.New(), maintenance.StatusResolved)
	assert.ErrorIs(t, err, maintenance.ErrNotFound)

	_, err = svc.UpdateStatus(ctx, list[0].ID, "termine")
	assert.ErrorIs(t, err, maintenance.ErrInvalid)
}

func TestTotalAndCostByType(t *testing.T) {
	works := maintenance.OwnerInterventions()

	assert.Equal(t, int64(5_200_000), maintenance.Total(works))
	assert.Equal(t, map[string]int64{
		"Plomberie":   500_000,
		"Électricité": 1_200_000,
		"Peinture":    3_500_000,
	}, maintenance.CostByType(works))
}
