package plans_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain/plans"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/store/storetest"
)

func TestNewValidates(t *testing.T) {
	valid := domain.Fields{"plan_name": "Monthly Desk", "duration": "1", "plan_type": "Monthly", "price": "150.50"}
	p, err := plans.New(valid)
	require.NoError(t, err)
	assert.Equal(t, plans.TypeMonthly, p.Type)
	assert.Equal(t, int64(1), p.Duration)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("150.50")))

	bad := []domain.Fields{
		{"plan_name": "Mo", "duration": 1, "plan_type": "monthly"},
		{"plan_name": "Monthly", "plan_type": "monthly"},
		{"plan_name": "Monthly", "duration": -2, "plan_type": "monthly"},
		{"plan_name": "Monthly", "duration": 1, "plan_type": "fortnightly"},
		{"plan_name": "Monthly", "duration": "one", "plan_type": "monthly"},
		{"plan_name": "Monthly", "duration": 1, "plan_type": "monthly", "price": "-1"},
		{"plan_name": "Monthly", "duration": 1, "plan_type": "monthly", "slot": -1},
		{"plan_name": "Monthly", "duration": 1, "plan_type": "monthly", "price": "abc"},
	}
	for _, f := range bad {
		_, err := plans.New(f)
		assert.True(t, domain.IsValidation(err), "fields %v: %v", f, err)
	}
}

func TestHalfYearlyIsAType(t *testing.T) {
	p, err := plans.New(domain.Fields{"plan_name": "Half Year", "duration": 1, "plan_type": "half-yearly"})
	require.NoError(t, err)
	assert.Equal(t, plans.TypeHalfYearly, p.Type)
}

func TestRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := plans.NewRepo(storetest.New(t), storetest.Logger())

	p, err := plans.New(domain.Fields{
		"plan_name": "Team Office", "duration": 1, "plan_type": "monthly",
		"slot": 4, "guest_pass": 2, "price": 0.29,
	})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, p))

	got, ok := repo.Get(ctx, p.ID)
	require.True(t, ok)
	assert.Equal(t, "0.29", got.Price.StringFixed(2))
	assert.Equal(t, int64(4), got.Slot)
	assert.Equal(t, int64(2), got.GuestPass)

	got, ok = repo.GetByName(ctx, "Team Office")
	require.True(t, ok)
	assert.Equal(t, p.ID, got.ID)

	p.Price = decimal.RequireFromString("1200.10")
	require.NoError(t, repo.Update(ctx, p))
	got, _ = repo.Get(ctx, p.ID)
	assert.Equal(t, "1200.10", got.Price.StringFixed(2))

	require.NoError(t, repo.Create(ctx, &plans.Plan{Name: "Day Pass", Duration: 1, Type: plans.TypeDaily}))
	assert.Len(t, repo.List(ctx), 2)
	assert.Len(t, repo.FilterByType(ctx, plans.TypeDaily), 1)
	assert.Len(t, repo.FilterByCreatedAt(ctx, p.CreatedAt.Format("2006")), 2)

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, ok = repo.Get(ctx, p.ID)
	assert.False(t, ok)
}
