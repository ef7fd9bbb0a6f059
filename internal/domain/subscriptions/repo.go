package subscriptions

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain/payments"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/store"
)

var selectAll = "SELECT " + strings.Join(store.KindSubscription.Columns(), ", ") + " FROM subscription"

type Repo struct {
	st  *store.Store
	log *slog.Logger
}

func NewRepo(st *store.Store, log *slog.Logger) *Repo {
	return &Repo{st: st, log: log.With("entity", entity)}
}

// Create stores s and, when it has no key yet, its payment in one
// transaction. The expiration date is computed here and never again.
func (r *Repo) Create(ctx context.Context, s *Subscription) error {
	if err := s.Validate(false); err != nil {
		return err
	}
	now := domain.Now()
	expires, err := ExpirationDate(now, s.Plan, s.PlanUnit)
	if err != nil {
		return err
	}

	pay := *s.Payment
	var key string
	err = r.st.WithTx(ctx, func(tx *store.Session) error {
		if pay.ID == "" {
			if err := payments.Insert(ctx, tx, &pay); err != nil {
				return err
			}
		} else if _, ok := payments.Fetch(ctx, tx, pay.ID); !ok {
			return domain.Invalid(entity, "payment %s does not exist", pay.ID)
		}

		var err error
		key, err = tx.InsertNew(ctx, store.KindSubscription, func(key string) []any {
			cp := *s
			cp.Payment = &pay
			return cp.row(key, expires, now)
		})
		return err
	})
	if err != nil {
		r.log.Error("create subscription failed", "client", s.Client.ID, "plan", s.Plan.ID, "err", err)
		return err
	}

	s.ID, s.Payment = key, &pay
	s.ExpirationDate, s.CreatedAt, s.UpdatedAt = expires, now, now
	r.log.Info("subscription created", "key", key, "expires", domain.FormatTime(expires))
	return nil
}

// Update rewrites references, units and status. The stored expiration date
// is kept as is.
func (r *Repo) Update(ctx context.Context, s *Subscription) error {
	if err := s.Validate(true); err != nil {
		return err
	}
	now := domain.Now()
	if err := r.st.Update(ctx, store.KindSubscription, s.updateRow(now)...); err != nil {
		return err
	}
	s.UpdatedAt = now
	r.log.Info("subscription updated", "key", s.ID, "status", string(s.Status))
	return nil
}

// Delete removes the subscription (visits and assignments cascade) and its
// payment once no other subscription refers to it.
func (r *Repo) Delete(ctx context.Context, key string) error {
	if key == "" {
		return domain.Invalid(entity, "subscription key is required")
	}
	err := r.st.WithTx(ctx, func(tx *store.Session) error {
		row, ok := tx.FetchOne(ctx, store.KindSubscription, key, store.ByKey)
		if !ok {
			return nil
		}
		paymentKey := row.String(3)
		if err := tx.Delete(ctx, store.KindSubscription, key); err != nil {
			return err
		}
		rows, _ := tx.Query(ctx, "SELECT 1 FROM subscription WHERE payment_key = ? LIMIT 1", paymentKey)
		if len(rows) > 0 {
			return nil
		}
		return tx.Delete(ctx, store.KindPayment, paymentKey)
	})
	if err != nil {
		return fmt.Errorf("delete subscription %s: %w", key, err)
	}
	r.log.Info("subscription deleted", "key", key)
	return nil
}

// Get resolves one subscription with its plan, client and payment.
func (r *Repo) Get(ctx context.Context, key string) (*Subscription, bool) {
	row, ok := r.st.FetchOne(ctx, store.KindSubscription, key, store.ByKey)
	if !ok {
		return nil, false
	}
	return newResolver(r.st, r.log).subscription(ctx, row)
}

func (r *Repo) List(ctx context.Context) []Subscription {
	return newResolver(r.st, r.log).all(ctx, r.st.FetchAll(ctx, store.KindSubscription))
}

func (r *Repo) FilterByClient(ctx context.Context, clientKey string) []Subscription {
	return r.filter(ctx, " WHERE client_key = ?", clientKey)
}

func (r *Repo) FilterByPlan(ctx context.Context, planKey string) []Subscription {
	return r.filter(ctx, " WHERE plan_key = ?", planKey)
}

func (r *Repo) FilterByPayment(ctx context.Context, paymentKey string) []Subscription {
	return r.filter(ctx, " WHERE payment_key = ?", paymentKey)
}

// FilterByCreatedAt matches a creation-time prefix: "2025" for a year,
// "2025-03" for a month.
func (r *Repo) FilterByCreatedAt(ctx context.Context, prefix string) []Subscription {
	return r.filter(ctx, " WHERE created_at LIKE ?", prefix+"%")
}

func (r *Repo) filter(ctx context.Context, where string, args ...any) []Subscription {
	rows, _ := r.st.Query(ctx, selectAll+where+" ORDER BY created_at", args...)
	return newResolver(r.st, r.log).all(ctx, rows)
}
