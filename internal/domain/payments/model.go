package payments

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain/money"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/store"
)

const entity = "payment"

// Payment amounts are decimals to callers and minor units in the store.
type Payment struct {
	ID         string
	Discount   decimal.Decimal
	Tax        decimal.Decimal
	TotalPrice decimal.Decimal
	AmountPaid decimal.Decimal
	CreatedAt  time.Time
}

func New(f domain.Fields) (*Payment, error) {
	p := &Payment{}
	if err := p.Apply(f); err != nil {
		return nil, err
	}
	if err := p.Validate(false); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Payment) Apply(f domain.Fields) error {
	if v, ok := f.String("payment_key"); ok {
		p.ID = v
	}
	for key, dst := range map[string]*decimal.Decimal{
		"discount":    &p.Discount,
		"tax":         &p.Tax,
		"total_price": &p.TotalPrice,
		"amount_paid": &p.AmountPaid,
	} {
		d, ok, err := f.Decimal(entity, key)
		if err != nil {
			return err
		}
		if ok {
			*dst = d
		}
	}
	t, ok, err := f.Time(entity, "created_at")
	if err != nil {
		return err
	}
	if ok {
		p.CreatedAt = t
	}
	return nil
}

func (p *Payment) Validate(checkID bool) error {
	for name, d := range map[string]decimal.Decimal{
		"discount":    p.Discount,
		"tax":         p.Tax,
		"total price": p.TotalPrice,
		"amount paid": p.AmountPaid,
	} {
		if d.IsNegative() {
			return domain.Invalid(entity, "%s cannot be less than zero", name)
		}
	}
	if checkID && p.ID == "" {
		return domain.Invalid(entity, "payment key is required")
	}
	return nil
}

// Row returns the stored tuple under key.
func (p *Payment) Row(key string, createdAt time.Time) []any {
	return []any{
		key,
		money.ToMinor(p.Discount),
		money.ToMinor(p.Tax),
		money.ToMinor(p.TotalPrice),
		money.ToMinor(p.AmountPaid),
		domain.FormatTime(createdAt),
	}
}

func (p *Payment) updateRow() []any {
	return []any{
		money.ToMinor(p.Discount),
		money.ToMinor(p.Tax),
		money.ToMinor(p.TotalPrice),
		money.ToMinor(p.AmountPaid),
		p.ID,
	}
}

func FromRow(r store.Row) *Payment {
	p := &Payment{
		ID:         r.String(0),
		Discount:   money.FromMinor(r.Int(1)),
		Tax:        money.FromMinor(r.Int(2)),
		TotalPrice: money.FromMinor(r.Int(3)),
		AmountPaid: money.FromMinor(r.Int(4)),
	}
	p.CreatedAt, _ = domain.ParseTime(r.String(5))
	return p
}
