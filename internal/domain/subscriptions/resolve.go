package subscriptions

import (
	"context"
	"log/slog"

	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain/clients"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain/payments"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain/plans"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/store"
)

// resolver turns subscription rows into entities, fetching each referenced
// plan, client and payment. Within one resolver every key is fetched at most
// once; callers get their own copy of each.
type resolver struct {
	ex  store.Executor
	log *slog.Logger

	plans    map[string]*plans.Plan
	clients  map[string]*clients.Client
	payments map[string]*payments.Payment
}

func newResolver(ex store.Executor, log *slog.Logger) *resolver {
	return &resolver{
		ex:       ex,
		log:      log,
		plans:    map[string]*plans.Plan{},
		clients:  map[string]*clients.Client{},
		payments: map[string]*payments.Payment{},
	}
}

func (r *resolver) subscription(ctx context.Context, row store.Row) (*Subscription, bool) {
	key := row.String(0)
	p, ok := lookup(r.plans, row.String(1), func(k string) (*plans.Plan, bool) { return plans.Fetch(ctx, r.ex, k) })
	if !ok {
		r.log.Error("subscription plan missing", "key", key, "plan", row.String(1))
		return nil, false
	}
	c, ok := lookup(r.clients, row.String(2), func(k string) (*clients.Client, bool) { return clients.Fetch(ctx, r.ex, k) })
	if !ok {
		r.log.Error("subscription client missing", "key", key, "client", row.String(2))
		return nil, false
	}
	pay, ok := lookup(r.payments, row.String(3), func(k string) (*payments.Payment, bool) { return payments.Fetch(ctx, r.ex, k) })
	if !ok {
		r.log.Error("subscription payment missing", "key", key, "payment", row.String(3))
		return nil, false
	}

	s := &Subscription{
		ID:       key,
		Plan:     p,
		Client:   c,
		Payment:  pay,
		PlanUnit: row.Int(4),
		Status:   Status(row.String(6)),
	}
	s.ExpirationDate, _ = domain.ParseTime(row.String(5))
	s.CreatedAt, _ = domain.ParseTime(row.String(7))
	s.UpdatedAt, _ = domain.ParseTime(row.String(8))
	return s, true
}

func (r *resolver) all(ctx context.Context, rows []store.Row) []Subscription {
	out := make([]Subscription, 0, len(rows))
	for _, row := range rows {
		if s, ok := r.subscription(ctx, row); ok {
			out = append(out, *s)
		}
	}
	return out
}

// lookup returns a fresh copy of the cached or fetched value.
func lookup[T any](cache map[string]*T, key string, fetch func(string) (*T, bool)) (*T, bool) {
	v, ok := cache[key]
	if !ok {
		if v, ok = fetch(key); !ok {
			return nil, false
		}
		cache[key] = v
	}
	cp := *v
	return &cp, true
}
