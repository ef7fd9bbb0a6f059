package subscriptions

import (
	"strings"
	"time"

	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain/clients"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain/payments"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain/plans"
)

const entity = "subscription"

type Status string

const (
	StatusBooked  Status = "booked"
	StatusRunning Status = "running"
	StatusExpired Status = "expired"
)

func (s Status) Valid() bool {
	switch s {
	case StatusBooked, StatusRunning, StatusExpired:
		return true
	}
	return false
}

// Subscription owns its Payment and holds copies of its Plan and Client;
// none of them are shared with other subscriptions.
type Subscription struct {
	ID             string
	Plan           *plans.Plan
	Client         *clients.Client
	Payment        *payments.Payment
	PlanUnit       int64
	ExpirationDate time.Time
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// New builds a subscription from raw fields. "plan", "client" and "payment"
// must hold resolved entities (value or pointer), not keys.
func New(f domain.Fields) (*Subscription, error) {
	s := &Subscription{}
	if err := s.Apply(f); err != nil {
		return nil, err
	}
	if err := s.Validate(false); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Subscription) Apply(f domain.Fields) error {
	if v, ok := f.String("subscription_key"); ok {
		s.ID = v
	}
	switch p := f["plan"].(type) {
	case *plans.Plan:
		if p != nil {
			cp := *p
			s.Plan = &cp
		}
	case plans.Plan:
		s.Plan = &p
	case nil:
	default:
		return domain.Invalid(entity, "plan must be a resolved plan, got %T", p)
	}
	switch c := f["client"].(type) {
	case *clients.Client:
		if c != nil {
			cp := *c
			s.Client = &cp
		}
	case clients.Client:
		s.Client = &c
	case nil:
	default:
		return domain.Invalid(entity, "client must be a resolved client, got %T", c)
	}
	switch p := f["payment"].(type) {
	case *payments.Payment:
		if p != nil {
			cp := *p
			s.Payment = &cp
		}
	case payments.Payment:
		s.Payment = &p
	case nil:
	default:
		return domain.Invalid(entity, "payment must be a resolved payment, got %T", p)
	}

	n, ok, err := f.Int(entity, "plan_unit")
	if err != nil {
		return err
	}
	if ok {
		s.PlanUnit = n
	}
	if v, ok := f.String("status"); ok {
		s.Status = Status(strings.ToLower(v))
	}
	for key, dst := range map[string]*time.Time{
		"expiration_date": &s.ExpirationDate,
		"created_at":      &s.CreatedAt,
		"updated_at":      &s.UpdatedAt,
	} {
		t, ok, err := f.Time(entity, key)
		if err != nil {
			return err
		}
		if ok {
			*dst = t
		}
	}
	return nil
}

// Validate checks the references, units and status. Once persisted
// (checkID) the key and expiration date are required too.
func (s *Subscription) Validate(checkID bool) error {
	if s.Plan == nil {
		return domain.Invalid(entity, "plan is required")
	}
	if s.Client == nil {
		return domain.Invalid(entity, "client is required")
	}
	if s.Payment == nil {
		return domain.Invalid(entity, "payment is required")
	}
	if s.PlanUnit < 1 {
		return domain.Invalid(entity, "plan unit must be at least 1, got %d", s.PlanUnit)
	}
	if !s.Status.Valid() {
		return domain.Invalid(entity, "status %q is not one of booked, running, expired", s.Status)
	}
	if checkID {
		if s.ID == "" {
			return domain.Invalid(entity, "subscription key is required")
		}
		if s.ExpirationDate.IsZero() {
			return domain.Invalid(entity, "expiration date is required")
		}
	}
	return nil
}

func (s *Subscription) row(key string, expires, now time.Time) []any {
	return []any{
		key, s.Plan.ID, s.Client.ID, s.Payment.ID, s.PlanUnit,
		domain.FormatTime(expires), string(s.Status), domain.FormatTime(now), domain.FormatTime(now),
	}
}

func (s *Subscription) updateRow(now time.Time) []any {
	return []any{
		s.Plan.ID, s.Client.ID, s.Payment.ID, s.PlanUnit,
		domain.FormatTime(s.ExpirationDate), string(s.Status), domain.FormatTime(now), s.ID,
	}
}
