package clients

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/store"
)

var selectAll = "SELECT " + strings.Join(store.KindClient.Columns(), ", ") + " FROM client"

type Repo struct {
	st  *store.Store
	log *slog.Logger
}

func NewRepo(st *store.Store, log *slog.Logger) *Repo {
	return &Repo{st: st, log: log.With("entity", entity)}
}

// Create assigns c a fresh key and persists it.
func (r *Repo) Create(ctx context.Context, c *Client) error {
	if err := c.Validate(false); err != nil {
		return err
	}
	now := domain.Now()
	key, err := r.st.InsertNew(ctx, store.KindClient, func(key string) []any {
		return c.row(key, now)
	})
	if err != nil {
		return err
	}
	c.ID, c.CreatedAt = key, now
	r.log.Info("client created", "key", key)
	return nil
}

func (r *Repo) Update(ctx context.Context, c *Client) error {
	if err := c.Validate(true); err != nil {
		return err
	}
	if err := r.st.Update(ctx, store.KindClient, c.updateRow()...); err != nil {
		return err
	}
	r.log.Info("client updated", "key", c.ID)
	return nil
}

// Delete removes the client; its subscriptions, visits and assignments go with it.
func (r *Repo) Delete(ctx context.Context, key string) error {
	if key == "" {
		return domain.Invalid(entity, "client key is required")
	}
	if err := r.st.Delete(ctx, store.KindClient, key); err != nil {
		return err
	}
	r.log.Info("client deleted", "key", key)
	return nil
}

func (r *Repo) Get(ctx context.Context, key string) (*Client, bool) {
	return Fetch(ctx, r.st, key)
}

func (r *Repo) GetByPhone(ctx context.Context, phone string) (*Client, bool) {
	return fetchBy(ctx, r.st, phone, store.ByPhone)
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (*Client, bool) {
	return fetchBy(ctx, r.st, strings.ToLower(strings.TrimSpace(email)), store.ByEmail)
}

// GetByName returns the first client whose first, last or company name matches.
func (r *Repo) GetByName(ctx context.Context, name string) (*Client, bool) {
	return fetchBy(ctx, r.st, name, store.ByName)
}

func (r *Repo) List(ctx context.Context) []Client {
	return fromRows(r.st.FetchAll(ctx, store.KindClient))
}

func (r *Repo) FilterByName(ctx context.Context, name string) []Client {
	rows, _ := r.st.Query(ctx, selectAll+" WHERE first_name = ? OR last_name = ? OR company_name = ?", name, name, name)
	return fromRows(rows)
}

// FilterByCreatedAt matches a creation-time prefix such as "2025" or "2025-03-01".
func (r *Repo) FilterByCreatedAt(ctx context.Context, prefix string) []Client {
	rows, _ := r.st.Query(ctx, selectAll+" WHERE created_at LIKE ?", prefix+"%")
	return fromRows(rows)
}

// Fetch loads one client by key through ex, which may be a transaction.
func Fetch(ctx context.Context, ex store.Executor, key string) (*Client, bool) {
	return fetchBy(ctx, ex, key, store.ByKey)
}

func fetchBy(ctx context.Context, ex store.Executor, value string, by store.Lookup) (*Client, bool) {
	row, ok := ex.FetchOne(ctx, store.KindClient, value, by)
	if !ok {
		return nil, false
	}
	return FromRow(row), true
}

func fromRows(rows []store.Row) []Client {
	out := make([]Client, 0, len(rows))
	for _, row := range rows {
		out = append(out, *FromRow(row))
	}
	return out
}
