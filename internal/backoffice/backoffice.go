// Package backoffice runs the batch flows around the records: importing
// clients and plans from files and exporting lists and reports.
package backoffice

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain/clients"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain/money"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain/plans"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain/subscriptions"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain/visits"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/infra/notify"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/store"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/transfer"
)

// Positional columns for files without a header row.
var (
	ClientColumns = []string{"first_name", "last_name", "company_name", "email", "phone"}
	PlanColumns   = []string{"plan_name", "duration", "plan_type", "price", "slot", "guest_pass"}
)

type Service struct {
	st       *store.Store
	clients  *clients.Repo
	plans    *plans.Repo
	subs     *subscriptions.Repo
	visits   *visits.Repo
	notifier notify.Notifier
	log      *slog.Logger
}

func New(st *store.Store, n notify.Notifier, log *slog.Logger) *Service {
	return &Service{
		st:       st,
		clients:  clients.NewRepo(st, log),
		plans:    plans.NewRepo(st, log),
		subs:     subscriptions.NewRepo(st, log),
		visits:   visits.NewRepo(st, log),
		notifier: n,
		log:      log.With("component", "backoffice"),
	}
}

// Failure is one record a batch could not store.
type Failure struct {
	Line   int
	Fields domain.Fields
	Err    error
}

type ImportResult struct {
	Imported int
	Failed   []Failure
}

// ImportClients creates a client per record of the file at path. Bad
// records are collected and reported; they do not stop the batch.
func (s *Service) ImportClients(ctx context.Context, path string, hasHeader bool) (ImportResult, error) {
	return s.importFile(ctx, "clients", path, hasHeader, ClientColumns, func(f domain.Fields) error {
		c, err := clients.New(f)
		if err != nil {
			return err
		}
		return s.clients.Create(ctx, c)
	})
}

func (s *Service) ImportPlans(ctx context.Context, path string, hasHeader bool) (ImportResult, error) {
	return s.importFile(ctx, "plans", path, hasHeader, PlanColumns, func(f domain.Fields) error {
		p, err := plans.New(f)
		if err != nil {
			return err
		}
		return s.plans.Create(ctx, p)
	})
}

func (s *Service) importFile(ctx context.Context, what, path string, hasHeader bool, columns []string, create func(domain.Fields) error) (ImportResult, error) {
	var res ImportResult
	format, err := transfer.ParseFormat(filepath.Ext(path))
	if err != nil {
		s.notifier.Notify(ctx, "import "+what, err)
		return res, err
	}

	for rec, err := range transfer.Read(path, format, hasHeader) {
		if err != nil {
			s.log.Error("import aborted", "what", what, "path", path, "err", err)
			s.notifier.Notify(ctx, "import "+what, err)
			return res, err
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		fields := rec.Fields(columns)
		if err := create(fields); err != nil {
			s.log.Warn("import record failed", "what", what, "line", rec.Line, "err", err)
			s.notifier.Notify(ctx, fmt.Sprintf("import %s: line %d", what, rec.Line), err)
			res.Failed = append(res.Failed, Failure{Line: rec.Line, Fields: fields, Err: err})
			continue
		}
		res.Imported++
	}
	s.log.Info("import finished", "what", what, "path", path, "imported", res.Imported, "failed", len(res.Failed))
	return res, nil
}

// ExportClients writes every client, without key and creation time.
func (s *Service) ExportClients(ctx context.Context, path string) error {
	rows, cols := s.st.FetchAllWithColumns(ctx, store.KindClient)
	header, data := strip(cols, rows, "client_key", "created_at")
	return s.export(ctx, "clients", path, "Clients", header, data)
}

// ExportPlans writes every plan, without key and creation time, prices as decimals.
func (s *Service) ExportPlans(ctx context.Context, path string) error {
	rows, cols := s.st.FetchAllWithColumns(ctx, store.KindPlan)
	header, data := strip(cols, rows, "plan_key", "created_at")
	if i := slices.Index(header, "price"); i >= 0 {
		for _, row := range data {
			row[i] = money.Format(money.FromMinor(store.Row(row).Int(i)))
		}
	}
	return s.export(ctx, "plans", path, "Plans", header, data)
}

// ExportSubscriptions writes the subscription report selected by f.
func (s *Service) ExportSubscriptions(ctx context.Context, path string, f subscriptions.ReportFilter) error {
	rep := s.subs.Report(ctx, f)
	return s.export(ctx, "subscriptions", path, "Subscriptions", subscriptions.ReportHeader, rep.Rows())
}

// ExportVisits writes two PDFs into dir for one subscription: every visit,
// and visit counts per client. It returns the written paths.
func (s *Service) ExportVisits(ctx context.Context, dir, subscriptionKey string) ([]string, error) {
	byDate := filepath.Join(dir, fmt.Sprintf("visits_%s_by_date.pdf", subscriptionKey))
	byCount := filepath.Join(dir, fmt.Sprintf("visits_%s_by_count.pdf", subscriptionKey))

	entries := s.visits.ListBySubscription(ctx, subscriptionKey)
	if err := s.export(ctx, "visits", byDate, "Visits by date", visits.EntryHeader, visits.EntryRows(entries)); err != nil {
		return nil, err
	}
	tallies := s.visits.CountBySubscription(ctx, subscriptionKey)
	if err := s.export(ctx, "visits", byCount, "Visits by count", visits.TallyHeader, visits.TallyRows(tallies)); err != nil {
		return nil, err
	}
	return []string{byDate, byCount}, nil
}

func (s *Service) export(ctx context.Context, what, path, title string, header []string, rows [][]any) error {
	format, err := transfer.ParseFormat(filepath.Ext(path))
	if err == nil {
		err = transfer.Export(path, format, title, header, rows)
	}
	if err != nil {
		s.log.Error("export failed", "what", what, "path", path, "err", err)
		s.notifier.Notify(ctx, "export "+what, err)
		return err
	}
	s.log.Info("export finished", "what", what, "path", path, "rows", len(rows))
	return nil
}

// strip drops the named columns from header and rows.
func strip(cols []string, rows []store.Row, drop ...string) ([]string, [][]any) {
	keep := make([]int, 0, len(cols))
	header := make([]string, 0, len(cols))
	for i, c := range cols {
		if slices.Contains(drop, c) {
			continue
		}
		keep = append(keep, i)
		header = append(header, c)
	}
	out := make([][]any, 0, len(rows))
	for _, row := range rows {
		vals := row.Values()
		r := make([]any, 0, len(keep))
		for _, i := range keep {
			r = append(r, vals[i])
		}
		out = append(out, r)
	}
	return header, out
}
