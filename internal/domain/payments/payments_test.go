package payments_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain/payments"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/store"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/store/storetest"
)

func TestNewRejectsNegativeAmounts(t *testing.T) {
	for _, key := range []string{"discount", "tax", "total_price", "amount_paid"} {
		_, err := payments.New(domain.Fields{key: "-0.01"})
		assert.True(t, domain.IsValidation(err), key)
	}

	p, err := payments.New(domain.Fields{"total_price": "60", "amount_paid": 60.0})
	require.NoError(t, err)
	assert.True(t, p.Discount.IsZero())
	assert.Equal(t, "60.00", p.AmountPaid.StringFixed(2))
}

func TestStoredAsMinorUnits(t *testing.T) {
	ctx := context.Background()
	st := storetest.New(t)
	repo := payments.NewRepo(st, storetest.Logger())

	p, err := payments.New(domain.Fields{
		"discount": "1.25", "tax": "0.75", "total_price": "60.00", "amount_paid": "59.99",
	})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, p))

	row, ok := st.FetchOne(ctx, store.KindPayment, p.ID, store.ByKey)
	require.True(t, ok)
	assert.Equal(t, int64(125), row.Int(1))
	assert.Equal(t, int64(75), row.Int(2))
	assert.Equal(t, int64(6000), row.Int(3))
	assert.Equal(t, int64(5999), row.Int(4))

	got, ok := repo.Get(ctx, p.ID)
	require.True(t, ok)
	assert.True(t, got.AmountPaid.Equal(decimal.RequireFromString("59.99")))
	assert.True(t, got.Discount.Equal(p.Discount))
}

func TestFilters(t *testing.T) {
	ctx := context.Background()
	repo := payments.NewRepo(storetest.New(t), storetest.Logger())

	a := &payments.Payment{TotalPrice: decimal.NewFromInt(60), AmountPaid: decimal.NewFromInt(60)}
	b := &payments.Payment{TotalPrice: decimal.NewFromInt(100), AmountPaid: decimal.NewFromInt(60)}
	c := &payments.Payment{TotalPrice: decimal.NewFromInt(100), AmountPaid: decimal.NewFromInt(100)}
	for _, p := range []*payments.Payment{a, b, c} {
		require.NoError(t, repo.Create(ctx, p))
	}

	assert.Len(t, repo.FilterByAmount(ctx, decimal.NewFromInt(60)), 2)
	assert.Len(t, repo.FilterByAmount(ctx, decimal.NewFromInt(100)), 2)
	assert.Empty(t, repo.FilterByAmount(ctx, decimal.NewFromInt(7)))
	assert.Len(t, repo.FilterByCreatedAt(ctx, a.CreatedAt.Format("2006-01")), 3)

	c.AmountPaid = decimal.RequireFromString("99.5")
	require.NoError(t, repo.Update(ctx, c))
	got, _ := repo.Get(ctx, c.ID)
	assert.Equal(t, "99.50", got.AmountPaid.StringFixed(2))

	require.NoError(t, repo.Delete(ctx, a.ID))
	assert.Len(t, repo.List(ctx), 2)
	assert.True(t, domain.IsValidation(repo.Update(ctx, &payments.Payment{})))
}
