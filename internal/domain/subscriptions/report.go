package subscriptions

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain/money"
)

// ReportHeader labels the columns of Report.Rows.
var ReportHeader = []string{"DATE", "CLIENT", "PLAN", "PRICE", "AMOUNT PAID", "DISCOUNT", "TAX", "VALIDITY", "STATUS"}

// Line is one subscription in a report. AmountPaid is zero when the
// payment already appeared on an earlier line.
type Line struct {
	Date       time.Time
	Client     string
	Plan       string
	Price      decimal.Decimal
	AmountPaid decimal.Decimal
	Discount   decimal.Decimal
	Tax        decimal.Decimal
	Validity   time.Time
	Status     Status
}

type Report struct {
	Lines      []Line
	Count      int
	TotalPrice decimal.Decimal
	TotalPaid  decimal.Decimal
}

// Summarize totals subs. Plan prices are summed per subscription; a payment
// shared by several subscriptions is counted once.
func Summarize(subs []Subscription) Report {
	rep := Report{TotalPrice: decimal.Zero, TotalPaid: decimal.Zero}
	seen := make(map[string]struct{}, len(subs))
	for _, s := range subs {
		if s.Plan == nil || s.Client == nil || s.Payment == nil {
			continue
		}
		paid := decimal.Zero
		if _, dup := seen[s.Payment.ID]; !dup {
			paid = s.Payment.AmountPaid
			seen[s.Payment.ID] = struct{}{}
		}
		rep.Count++
		rep.TotalPrice = rep.TotalPrice.Add(s.Plan.Price)
		rep.TotalPaid = rep.TotalPaid.Add(paid)
		rep.Lines = append(rep.Lines, Line{
			Date:       s.CreatedAt,
			Client:     s.Client.DisplayName(),
			Plan:       s.Plan.Name,
			Price:      s.Plan.Price,
			AmountPaid: paid,
			Discount:   s.Payment.Discount,
			Tax:        s.Payment.Tax,
			Validity:   s.ExpirationDate,
			Status:     s.Status,
		})
	}
	return rep
}

// Rows renders the report for export, ending with a TOTAL row.
func (r Report) Rows() [][]any {
	out := make([][]any, 0, len(r.Lines)+1)
	for _, l := range r.Lines {
		out = append(out, []any{
			domain.FormatTime(l.Date),
			l.Client,
			l.Plan,
			money.Format(l.Price),
			money.Format(l.AmountPaid),
			money.Format(l.Discount),
			money.Format(l.Tax),
			domain.FormatTime(l.Validity),
			string(l.Status),
		})
	}
	out = append(out, []any{
		"TOTAL", r.Count, r.Count,
		money.Format(r.TotalPrice), money.Format(r.TotalPaid),
		"-", "-", "-", "-",
	})
	return out
}

// ReportFilter narrows a report. Empty fields match everything; Period is a
// creation-time prefix such as "2025" or "2025-03".
type ReportFilter struct {
	ClientID string
	PlanID   string
	Period   string
}

func (r *Repo) Report(ctx context.Context, f ReportFilter) Report {
	var (
		conds []string
		args  []any
	)
	if f.ClientID != "" {
		conds = append(conds, "client_key = ?")
		args = append(args, f.ClientID)
	}
	if f.PlanID != "" {
		conds = append(conds, "plan_key = ?")
		args = append(args, f.PlanID)
	}
	if f.Period != "" {
		conds = append(conds, "created_at LIKE ?")
		args = append(args, f.Period+"%")
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}
	return Summarize(r.filter(ctx, where, args...))
}
