package visits

import (
	"time"

	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain"
)

const entity = "visit"

// Visit is one entry in the append-only gate log.
type Visit struct {
	SubscriptionID string
	ClientID       string
	Timestamp      time.Time
}

func New(f domain.Fields) (*Visit, error) {
	v := &Visit{}
	if s, ok := f.String("subscription_key"); ok {
		v.SubscriptionID = s
	}
	if s, ok := f.String("client_key"); ok {
		v.ClientID = s
	}
	t, ok, err := f.Time(entity, "timestamp")
	if err != nil {
		return nil, err
	}
	if ok {
		v.Timestamp = t
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Visit) Validate() error {
	if v.SubscriptionID == "" {
		return domain.Invalid(entity, "subscription key is required")
	}
	if v.ClientID == "" {
		return domain.Invalid(entity, "client key is required")
	}
	return nil
}

// Entry is a visit joined with the visiting client.
type Entry struct {
	SubscriptionID string
	ClientID       string
	FirstName      string
	LastName       string
	CompanyName    string
	Timestamp      time.Time
}

// Tally is the number of visits one client made under a subscription.
type Tally struct {
	ClientID    string
	FirstName   string
	LastName    string
	CompanyName string
	Visits      int64
}

var (
	EntryHeader = []string{"FIRST_NAME", "LAST_NAME", "COMPANY_NAME", "TIMESTAMP"}
	TallyHeader = []string{"FIRST_NAME", "LAST_NAME", "COMPANY_NAME", "VISIT_COUNT"}
)

// EntryRows renders entries for export without the client key.
func EntryRows(entries []Entry) [][]any {
	out := make([][]any, 0, len(entries))
	for _, e := range entries {
		out = append(out, []any{e.FirstName, e.LastName, e.CompanyName, domain.FormatTime(e.Timestamp)})
	}
	return out
}

func TallyRows(tallies []Tally) [][]any {
	out := make([][]any, 0, len(tallies))
	for _, t := range tallies {
		out = append(out, []any{t.FirstName, t.LastName, t.CompanyName, t.Visits})
	}
	return out
}
