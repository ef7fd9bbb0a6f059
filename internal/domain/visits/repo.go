package visits

import (
	"context"
	"log/slog"

	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/store"
)

const entrySelect = `
	SELECT v.subscription_key, v.client_key, c.first_name, c.last_name, c.company_name, v.timestamp
	FROM visit AS v
	INNER JOIN client AS c ON v.client_key = c.client_key`

type Repo struct {
	st  *store.Store
	log *slog.Logger
}

func NewRepo(st *store.Store, log *slog.Logger) *Repo {
	return &Repo{st: st, log: log.With("entity", entity)}
}

// Record logs a visit by client under subscription at the current time.
func (r *Repo) Record(ctx context.Context, subscriptionKey, clientKey string) (*Visit, error) {
	v := &Visit{SubscriptionID: subscriptionKey, ClientID: clientKey, Timestamp: domain.Now()}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	if err := r.st.Insert(ctx, store.KindVisit, v.SubscriptionID, domain.FormatTime(v.Timestamp), v.ClientID); err != nil {
		return nil, err
	}
	r.log.Info("visit recorded", "subscription", subscriptionKey, "client", clientKey)
	return v, nil
}

// Delete removes the client's visits under subscription whose timestamp
// starts with prefix ("2025-03-01" for one day).
func (r *Repo) Delete(ctx context.Context, subscriptionKey, clientKey, prefix string) error {
	if subscriptionKey == "" || clientKey == "" || prefix == "" {
		return domain.Invalid(entity, "subscription, client and date are required to delete visits")
	}
	const q = `DELETE FROM visit WHERE subscription_key = ? AND client_key = ? AND timestamp LIKE ?`
	if err := r.st.Exec(ctx, q, subscriptionKey, clientKey, prefix+"%"); err != nil {
		return err
	}
	r.log.Info("visits deleted", "subscription", subscriptionKey, "client", clientKey, "date", prefix)
	return nil
}

func (r *Repo) ListBySubscription(ctx context.Context, subscriptionKey string) []Entry {
	rows, _ := r.st.Query(ctx, entrySelect+` WHERE v.subscription_key = ? ORDER BY v.timestamp`, subscriptionKey)
	return entries(rows)
}

// ListByDate returns every visit whose timestamp starts with prefix.
func (r *Repo) ListByDate(ctx context.Context, prefix string) []Entry {
	rows, _ := r.st.Query(ctx, entrySelect+` WHERE v.timestamp LIKE ? ORDER BY v.timestamp`, prefix+"%")
	return entries(rows)
}

// CountBySubscription tallies visits per client under one subscription.
func (r *Repo) CountBySubscription(ctx context.Context, subscriptionKey string) []Tally {
	const q = `
		SELECT c.client_key, c.first_name, c.last_name, c.company_name, COUNT(v.timestamp) AS visit_count
		FROM visit AS v
		INNER JOIN client AS c ON v.client_key = c.client_key
		WHERE v.subscription_key = ?
		GROUP BY c.client_key, c.first_name, c.last_name, c.company_name
		ORDER BY visit_count DESC, c.client_key`
	rows, _ := r.st.Query(ctx, q, subscriptionKey)
	out := make([]Tally, 0, len(rows))
	for _, row := range rows {
		out = append(out, Tally{
			ClientID:    row.String(0),
			FirstName:   row.String(1),
			LastName:    row.String(2),
			CompanyName: row.String(3),
			Visits:      row.Int(4),
		})
	}
	return out
}

func entries(rows []store.Row) []Entry {
	out := make([]Entry, 0, len(rows))
	for _, row := range rows {
		e := Entry{
			SubscriptionID: row.String(0),
			ClientID:       row.String(1),
			FirstName:      row.String(2),
			LastName:       row.String(3),
			CompanyName:    row.String(4),
		}
		e.Timestamp, _ = domain.ParseTime(row.String(5))
		out = append(out, e)
	}
	return out
}
