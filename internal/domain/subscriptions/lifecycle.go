package subscriptions

import (
	"math"
	"time"

	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain/plans"
)

const day = 24 * time.Hour

// DurationUnit is the span one duration of a plan type covers. Months are
// 30 days and years 365, not calendar months and years.
func DurationUnit(t plans.Type) (time.Duration, error) {
	switch t {
	case plans.TypeHourly:
		return time.Hour, nil
	case plans.TypeDaily:
		return day, nil
	case plans.TypeWeekly:
		return 7 * day, nil
	case plans.TypeMonthly:
		return 30 * day, nil
	case plans.TypeHalfYearly:
		return 183 * day, nil
	case plans.TypeYearly:
		return 365 * day, nil
	}
	return 0, domain.Invalid(entity, "no duration unit for plan type %q", t)
}

// ExpirationDate is from + unit(plan type) × plan duration × units.
func ExpirationDate(from time.Time, p *plans.Plan, units int64) (time.Time, error) {
	if p == nil {
		return time.Time{}, domain.Invalid(entity, "plan is required")
	}
	unit, err := DurationUnit(p.Type)
	if err != nil {
		return time.Time{}, err
	}
	if p.Duration < 1 || units < 1 {
		return time.Time{}, domain.Invalid(entity, "duration and plan unit must be positive")
	}
	if p.Duration > math.MaxInt64/units || p.Duration*units > int64(math.MaxInt64/unit) {
		return time.Time{}, domain.Invalid(entity, "validity of %d × %d %s is too long", p.Duration, units, p.Type)
	}
	return from.Add(unit * time.Duration(p.Duration*units)), nil
}

// Expired reports whether the validity window has passed at now.
func (s *Subscription) Expired(now time.Time) bool {
	return !s.ExpirationDate.IsZero() && !now.Before(s.ExpirationDate)
}
