package clients_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain/clients"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/store"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/store/storetest"
)

func TestNewValidates(t *testing.T) {
	cases := []struct {
		name   string
		fields domain.Fields
		ok     bool
	}{
		{"person", domain.Fields{"first_name": "Client", "phone": "081000000001"}, true},
		{"company", domain.Fields{"company_name": "Acme Ltd", "phone": "0800"}, true},
		{"no name", domain.Fields{"last_name": "One", "phone": "0800"}, false},
		{"short first name", domain.Fields{"first_name": "Al", "phone": "0800"}, false},
		{"short company", domain.Fields{"first_name": "Alice", "company_name": "AB", "phone": "0800"}, false},
		{"missing phone", domain.Fields{"first_name": "Alice"}, false},
		{"letters in phone", domain.Fields{"first_name": "Alice", "phone": "0800-abc"}, false},
		{"plus in phone", domain.Fields{"first_name": "Alice", "phone": "+234800"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := clients.New(tc.fields)
			if tc.ok {
				require.NoError(t, err)
				assert.NotNil(t, c)
				return
			}
			assert.True(t, domain.IsValidation(err), "got %v", err)
		})
	}
}

func TestApplyKeepsPreviousValues(t *testing.T) {
	c, err := clients.New(domain.Fields{"first_name": "Client", "last_name": "One", "email": " Me@X.io ", "phone": "0801"})
	require.NoError(t, err)
	assert.Equal(t, "me@x.io", c.Email)

	require.NoError(t, c.Apply(domain.Fields{"last_name": "Two", "phone": "", "first_name": nil}))
	assert.Equal(t, "Client", c.FirstName)
	assert.Equal(t, "Two", c.LastName)
	assert.Equal(t, "0801", c.Phone)
	assert.Equal(t, "Client Two", c.DisplayName())
}

func TestCreateRejectsBadPhoneWithoutInsert(t *testing.T) {
	ctx := context.Background()
	st := storetest.New(t)
	repo := clients.NewRepo(st, storetest.Logger())

	c := &clients.Client{FirstName: "Client", Phone: "08x"}
	err := repo.Create(ctx, c)
	assert.True(t, domain.IsValidation(err))
	assert.Empty(t, c.ID)
	assert.Empty(t, repo.List(ctx))

	c.Phone = ""
	assert.True(t, domain.IsValidation(repo.Create(ctx, c)))
	assert.Empty(t, repo.List(ctx))
}

func TestRepoLifecycle(t *testing.T) {
	ctx := context.Background()
	st := storetest.New(t)
	repo := clients.NewRepo(st, storetest.Logger())

	c, err := clients.New(domain.Fields{"first_name": "Client", "last_name": "One", "phone": "081000000001"})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, c))
	require.NotEmpty(t, c.ID)

	all := repo.List(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, "081000000001", all[0].Phone)

	got, ok := repo.GetByPhone(ctx, "081000000001")
	require.True(t, ok)
	assert.Equal(t, c.ID, got.ID)
	assert.True(t, c.CreatedAt.Equal(got.CreatedAt))

	c.Email = "one@example.com"
	require.NoError(t, repo.Update(ctx, c))
	got, ok = repo.GetByEmail(ctx, "ONE@example.com")
	require.True(t, ok)
	assert.Equal(t, c.ID, got.ID)

	assert.Len(t, repo.FilterByName(ctx, "One"), 1)
	assert.Empty(t, repo.FilterByName(ctx, "Nobody"))
	assert.Len(t, repo.FilterByCreatedAt(ctx, c.CreatedAt.Format("2006-01-02")), 1)
	assert.Empty(t, repo.FilterByCreatedAt(ctx, "1999"))

	_, ok = repo.Get(ctx, "missing")
	assert.False(t, ok)

	assert.True(t, domain.IsValidation(repo.Update(ctx, &clients.Client{FirstName: "Client", Phone: "01"})))
	assert.True(t, domain.IsValidation(repo.Delete(ctx, "")))
}

func TestDuplicatePhone(t *testing.T) {
	ctx := context.Background()
	repo := clients.NewRepo(storetest.New(t), storetest.Logger())

	require.NoError(t, repo.Create(ctx, &clients.Client{FirstName: "Client", Phone: "0801"}))
	err := repo.Create(ctx, &clients.Client{CompanyName: "Other Co", Phone: "0801"})
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestDeleteCascades(t *testing.T) {
	ctx := context.Background()
	st := storetest.New(t)
	repo := clients.NewRepo(st, storetest.Logger())

	c := &clients.Client{FirstName: "Client", Phone: "0801"}
	require.NoError(t, repo.Create(ctx, c))

	const ts = "2025-01-01 09:00:00"
	require.NoError(t, st.Insert(ctx, store.KindPlan, "p1", "Daily", 1, "daily", 0, 0, 500, ts))
	require.NoError(t, st.Insert(ctx, store.KindPayment, "pay1", 0, 0, 500, 500, ts))
	require.NoError(t, st.Insert(ctx, store.KindSubscription, "s1", "p1", c.ID, "pay1", 1, ts, "running", ts, ts))
	require.NoError(t, st.Insert(ctx, store.KindVisit, "s1", ts, c.ID))

	require.NoError(t, repo.Delete(ctx, c.ID))

	_, ok := repo.Get(ctx, c.ID)
	assert.False(t, ok)
	assert.Empty(t, st.FetchAll(ctx, store.KindSubscription))
	assert.Empty(t, st.FetchAll(ctx, store.KindVisit))
}
