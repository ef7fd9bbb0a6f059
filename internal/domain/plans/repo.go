package plans

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/store"
)

var selectAll = "SELECT " + strings.Join(store.KindPlan.Columns(), ", ") + " FROM plan"

type Repo struct {
	st  *store.Store
	log *slog.Logger
}

func NewRepo(st *store.Store, log *slog.Logger) *Repo {
	return &Repo{st: st, log: log.With("entity", entity)}
}

func (r *Repo) Create(ctx context.Context, p *Plan) error {
	if err := p.Validate(false); err != nil {
		return err
	}
	now := domain.Now()
	key, err := r.st.InsertNew(ctx, store.KindPlan, func(key string) []any {
		return p.row(key, now)
	})
	if err != nil {
		return err
	}
	p.ID, p.CreatedAt = key, now
	r.log.Info("plan created", "key", key, "name", p.Name)
	return nil
}

func (r *Repo) Update(ctx context.Context, p *Plan) error {
	if err := p.Validate(true); err != nil {
		return err
	}
	if err := r.st.Update(ctx, store.KindPlan, p.updateRow()...); err != nil {
		return err
	}
	r.log.Info("plan updated", "key", p.ID)
	return nil
}

// Delete removes the plan and every subscription on it.
func (r *Repo) Delete(ctx context.Context, key string) error {
	if key == "" {
		return domain.Invalid(entity, "plan key is required")
	}
	if err := r.st.Delete(ctx, store.KindPlan, key); err != nil {
		return err
	}
	r.log.Info("plan deleted", "key", key)
	return nil
}

func (r *Repo) Get(ctx context.Context, key string) (*Plan, bool) {
	return Fetch(ctx, r.st, key)
}

func (r *Repo) GetByName(ctx context.Context, name string) (*Plan, bool) {
	row, ok := r.st.FetchOne(ctx, store.KindPlan, name, store.ByName)
	if !ok {
		return nil, false
	}
	return FromRow(row), true
}

func (r *Repo) List(ctx context.Context) []Plan {
	return fromRows(r.st.FetchAll(ctx, store.KindPlan))
}

func (r *Repo) FilterByType(ctx context.Context, t Type) []Plan {
	rows, _ := r.st.Query(ctx, selectAll+" WHERE plan_type = ?", string(t))
	return fromRows(rows)
}

func (r *Repo) FilterByCreatedAt(ctx context.Context, prefix string) []Plan {
	rows, _ := r.st.Query(ctx, selectAll+" WHERE created_at LIKE ?", prefix+"%")
	return fromRows(rows)
}

// Fetch loads one plan by key through ex.
func Fetch(ctx context.Context, ex store.Executor, key string) (*Plan, bool) {
	row, ok := ex.FetchOne(ctx, store.KindPlan, key, store.ByKey)
	if !ok {
		return nil, false
	}
	return FromRow(row), true
}

func fromRows(rows []store.Row) []Plan {
	out := make([]Plan, 0, len(rows))
	for _, row := range rows {
		out = append(out, *FromRow(row))
	}
	return out
}
