package plans

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain/money"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/store"
)

const entity = "plan"

type Type string

const (
	TypeHourly     Type = "hourly"
	TypeDaily      Type = "daily"
	TypeWeekly     Type = "weekly"
	TypeMonthly    Type = "monthly"
	TypeHalfYearly Type = "half-yearly"
	TypeYearly     Type = "yearly"
)

var Types = []Type{TypeHourly, TypeDaily, TypeWeekly, TypeMonthly, TypeHalfYearly, TypeYearly}

func (t Type) Valid() bool {
	for _, v := range Types {
		if v == t {
			return true
		}
	}
	return false
}

type Plan struct {
	ID        string
	Name      string
	Duration  int64
	Type      Type
	Slot      int64
	GuestPass int64
	Price     decimal.Decimal
	CreatedAt time.Time
}

func New(f domain.Fields) (*Plan, error) {
	p := &Plan{}
	if err := p.Apply(f); err != nil {
		return nil, err
	}
	if err := p.Validate(false); err != nil {
		return nil, err
	}
	return p, nil
}

// Apply copies the non-empty fields onto p.
func (p *Plan) Apply(f domain.Fields) error {
	if v, ok := f.String("plan_key"); ok {
		p.ID = v
	}
	if v, ok := f.String("plan_name"); ok {
		p.Name = v
	}
	if v, ok := f.String("plan_type"); ok {
		p.Type = Type(strings.ToLower(v))
	}
	for key, dst := range map[string]*int64{"duration": &p.Duration, "slot": &p.Slot, "guest_pass": &p.GuestPass} {
		n, ok, err := f.Int(entity, key)
		if err != nil {
			return err
		}
		if ok {
			*dst = n
		}
	}
	price, ok, err := f.Decimal(entity, "price")
	if err != nil {
		return err
	}
	if ok {
		p.Price = price
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

func (p *Plan) Validate(checkID bool) error {
	if len([]rune(p.Name)) < 3 {
		return domain.Invalid(entity, "plan name cannot be less than 3 characters")
	}
	if p.Duration < 1 {
		return domain.Invalid(entity, "duration must be at least 1, got %d", p.Duration)
	}
	if !p.Type.Valid() {
		return domain.Invalid(entity, "plan type %q is not one of %s", p.Type, typeList())
	}
	if p.Slot < 0 {
		return domain.Invalid(entity, "slot cannot be negative")
	}
	if p.GuestPass < 0 {
		return domain.Invalid(entity, "guest pass cannot be negative")
	}
	if p.Price.IsNegative() {
		return domain.Invalid(entity, "price cannot be negative")
	}
	if checkID && p.ID == "" {
		return domain.Invalid(entity, "plan key is required")
	}
	return nil
}

func typeList() string {
	names := make([]string, len(Types))
	for i, t := range Types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func (p *Plan) String() string { return p.Name }

func (p *Plan) row(key string, createdAt time.Time) []any {
	return []any{key, p.Name, p.Duration, string(p.Type), p.Slot, p.GuestPass, money.ToMinor(p.Price), domain.FormatTime(createdAt)}
}

func (p *Plan) updateRow() []any {
	return []any{p.Name, p.Duration, string(p.Type), p.Slot, p.GuestPass, money.ToMinor(p.Price), p.ID}
}

// FromRow rebuilds a stored plan; the price column holds minor units.
func FromRow(r store.Row) *Plan {
	p := &Plan{
		ID:        r.String(0),
		Name:      r.String(1),
		Duration:  r.Int(2),
		Type:      Type(r.String(3)),
		Slot:      r.Int(4),
		GuestPass: r.Int(5),
		Price:     money.FromMinor(r.Int(6)),
	}
	p.CreatedAt, _ = domain.ParseTime(r.String(7))
	return p
}
