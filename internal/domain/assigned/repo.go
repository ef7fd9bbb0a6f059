package assigned

import (
	"context"
	"log/slog"

	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain/plans"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/store"
)

type Repo struct {
	st  *store.Store
	log *slog.Logger
}

func NewRepo(st *store.Store, log *slog.Logger) *Repo {
	return &Repo{st: st, log: log.With("entity", entity)}
}

// Assign grants client access under subscription. A client is assigned at
// most once, and a plan with slots caps the number of assignees.
func (r *Repo) Assign(ctx context.Context, subscriptionKey, clientKey string) (*AssignedClient, error) {
	a := &AssignedClient{SubscriptionID: subscriptionKey, ClientID: clientKey, CreatedAt: domain.Now()}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	err := r.st.WithTx(ctx, func(tx *store.Session) error {
		sub, ok := tx.FetchOne(ctx, store.KindSubscription, subscriptionKey, store.ByKey)
		if !ok {
			return domain.Invalid(entity, "subscription %s does not exist", subscriptionKey)
		}
		plan, ok := plans.Fetch(ctx, tx, sub.String(1))
		if !ok {
			return domain.Invalid(entity, "plan of subscription %s does not exist", subscriptionKey)
		}

		rows, _ := tx.Query(ctx, `SELECT client_key FROM assigned_client WHERE subscription_key = ?`, subscriptionKey)
		for _, row := range rows {
			if row.String(0) == clientKey {
				return domain.Invalid(entity, "client %s is already assigned to %s", clientKey, subscriptionKey)
			}
		}
		if plan.Slot > 0 && int64(len(rows)) >= plan.Slot {
			return domain.Invalid(entity, "all %d slots of %s are taken", plan.Slot, subscriptionKey)
		}
		return tx.Insert(ctx, store.KindAssignedClient, subscriptionKey, clientKey, domain.FormatTime(a.CreatedAt))
	})
	if err != nil {
		return nil, err
	}
	r.log.Info("client assigned", "subscription", subscriptionKey, "client", clientKey)
	return a, nil
}

func (r *Repo) Remove(ctx context.Context, subscriptionKey, clientKey string) error {
	a := &AssignedClient{SubscriptionID: subscriptionKey, ClientID: clientKey}
	if err := a.Validate(); err != nil {
		return err
	}
	const q = `DELETE FROM assigned_client WHERE subscription_key = ? AND client_key = ?`
	if err := r.st.Exec(ctx, q, subscriptionKey, clientKey); err != nil {
		return err
	}
	r.log.Info("client unassigned", "subscription", subscriptionKey, "client", clientKey)
	return nil
}

func (r *Repo) IsAssigned(ctx context.Context, subscriptionKey, clientKey string) bool {
	const q = `SELECT 1 FROM assigned_client WHERE subscription_key = ? AND client_key = ? LIMIT 1`
	rows, _ := r.st.Query(ctx, q, subscriptionKey, clientKey)
	return len(rows) > 0
}

func (r *Repo) ListBySubscription(ctx context.Context, subscriptionKey string) []AssignedClient {
	const q = `SELECT subscription_key, client_key, created_at FROM assigned_client
	           WHERE subscription_key = ? ORDER BY created_at`
	rows, _ := r.st.Query(ctx, q, subscriptionKey)
	out := make([]AssignedClient, 0, len(rows))
	for _, row := range rows {
		a := AssignedClient{SubscriptionID: row.String(0), ClientID: row.String(1)}
		a.CreatedAt, _ = domain.ParseTime(row.String(2))
		out = append(out, a)
	}
	return out
}
