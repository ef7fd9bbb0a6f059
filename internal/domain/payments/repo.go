package payments

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain/money"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/store"
)

var selectAll = "SELECT " + strings.Join(store.KindPayment.Columns(), ", ") + " FROM payment"

type Repo struct {
	st  *store.Store
	log *slog.Logger
}

func NewRepo(st *store.Store, log *slog.Logger) *Repo {
	return &Repo{st: st, log: log.With("entity", entity)}
}

func (r *Repo) Create(ctx context.Context, p *Payment) error {
	if err := Insert(ctx, r.st, p); err != nil {
		return err
	}
	r.log.Info("payment created", "key", p.ID)
	return nil
}

// Insert validates p and stores it under a fresh key through ex.
func Insert(ctx context.Context, ex store.Executor, p *Payment) error {
	if err := p.Validate(false); err != nil {
		return err
	}
	now := domain.Now()
	key, err := ex.InsertNew(ctx, store.KindPayment, func(key string) []any {
		return p.Row(key, now)
	})
	if err != nil {
		return err
	}
	p.ID, p.CreatedAt = key, now
	return nil
}

func (r *Repo) Update(ctx context.Context, p *Payment) error {
	if err := p.Validate(true); err != nil {
		return err
	}
	if err := r.st.Update(ctx, store.KindPayment, p.updateRow()...); err != nil {
		return err
	}
	r.log.Info("payment updated", "key", p.ID)
	return nil
}

func (r *Repo) Delete(ctx context.Context, key string) error {
	if key == "" {
		return domain.Invalid(entity, "payment key is required")
	}
	if err := r.st.Delete(ctx, store.KindPayment, key); err != nil {
		return err
	}
	r.log.Info("payment deleted", "key", key)
	return nil
}

func (r *Repo) Get(ctx context.Context, key string) (*Payment, bool) {
	return Fetch(ctx, r.st, key)
}

func (r *Repo) List(ctx context.Context) []Payment {
	return fromRows(r.st.FetchAll(ctx, store.KindPayment))
}

// FilterByAmount returns payments whose total price or paid amount equals amount.
func (r *Repo) FilterByAmount(ctx context.Context, amount decimal.Decimal) []Payment {
	minor := money.ToMinor(amount)
	rows, _ := r.st.Query(ctx, selectAll+" WHERE total_price = ? OR amount_paid = ?", minor, minor)
	return fromRows(rows)
}

func (r *Repo) FilterByCreatedAt(ctx context.Context, prefix string) []Payment {
	rows, _ := r.st.Query(ctx, selectAll+" WHERE created_at LIKE ?", prefix+"%")
	return fromRows(rows)
}

func Fetch(ctx context.Context, ex store.Executor, key string) (*Payment, bool) {
	row, ok := ex.FetchOne(ctx, store.KindPayment, key, store.ByKey)
	if !ok {
		return nil, false
	}
	return FromRow(row), true
}

func fromRows(rows []store.Row) []Payment {
	out := make([]Payment, 0, len(rows))
	for _, row := range rows {
		out = append(out, *FromRow(row))
	}
	return out
}
