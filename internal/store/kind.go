package store

import (
	"fmt"
	"strings"
)

// Kind is one of the six fixed record types the mapper knows how to persist.
type Kind int

const (
	KindClient Kind = iota + 1
	KindPlan
	KindPayment
	KindSubscription
	KindVisit
	KindAssignedClient
)

// Lookup selects the indexed column FetchOne filters on.
type Lookup int

const (
	ByKey Lookup = iota
	ByName
	ByPhone
	ByEmail
)

func (l Lookup) String() string {
	switch l {
	case ByKey:
		return "key"
	case ByName:
		return "name"
	case ByPhone:
		return "phone"
	case ByEmail:
		return "email"
	}
	return fmt.Sprintf("lookup(%d)", int(l))
}

type table struct {
	tag     string
	name    string
	key     string
	columns []string
	update  string
	lookups map[Lookup]string
}

var tables = map[Kind]table{
	KindClient: {
		tag:     "client",
		name:    "client",
		key:     "client_key",
		columns: []string{"client_key", "first_name", "last_name", "company_name", "email", "phone", "created_at"},
		update: `UPDATE client SET first_name = ?, last_name = ?, company_name = ?, email = ?, phone = ?
		         WHERE client_key = ?`,
		lookups: map[Lookup]string{
			ByKey:   "client_key = ?",
			ByName:  "(first_name = ? OR last_name = ? OR company_name = ?)",
			ByPhone: "phone = ?",
			ByEmail: "email = ?",
		},
	},
	KindPlan: {
		tag:     "plan",
		name:    "plan",
		key:     "plan_key",
		columns: []string{"plan_key", "plan_name", "duration", "plan_type", "slot", "guest_pass", "price", "created_at"},
		update: `UPDATE plan SET plan_name = ?, duration = ?, plan_type = ?, slot = ?, guest_pass = ?, price = ?
		         WHERE plan_key = ?`,
		lookups: map[Lookup]string{
			ByKey:  "plan_key = ?",
			ByName: "plan_name = ?",
		},
	},
	KindPayment: {
		tag:     "payment",
		name:    "payment",
		key:     "payment_key",
		columns: []string{"payment_key", "discount", "tax", "total_price", "amount_paid", "created_at"},
		update: `UPDATE payment SET discount = ?, tax = ?, total_price = ?, amount_paid = ?
		         WHERE payment_key = ?`,
		lookups: map[Lookup]string{
			ByKey: "payment_key = ?",
		},
	},
	KindSubscription: {
		tag:  "subscription",
		name: "subscription",
		key:  "subscription_key",
		columns: []string{
			"subscription_key", "plan_key", "client_key", "payment_key",
			"plan_unit", "expiration_date", "status", "created_at", "updated_at",
		},
		update: `UPDATE subscription SET plan_key = ?, client_key = ?, payment_key = ?, plan_unit = ?,
		         expiration_date = ?, status = ?, updated_at = ?
		         WHERE subscription_key = ?`,
		lookups: map[Lookup]string{
			ByKey: "subscription_key = ?",
		},
	},
	KindVisit: {
		tag:     "visit",
		name:    "visit",
		columns: []string{"subscription_key", "timestamp", "client_key"},
	},
	KindAssignedClient: {
		tag:     "assigned_client",
		name:    "assigned_client",
		columns: []string{"subscription_key", "client_key", "created_at"},
	},
}

// ParseKind maps a case-insensitive entity tag onto its Kind.
func ParseKind(tag string) (Kind, error) {
	t := strings.ToLower(strings.TrimSpace(tag))
	for k, tb := range tables {
		if tb.tag == t {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedKind, tag)
}

func (k Kind) String() string {
	if tb, ok := tables[k]; ok {
		return tb.tag
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Columns returns the kind's column names in row order.
func (k Kind) Columns() []string {
	tb, ok := tables[k]
	if !ok {
		return nil
	}
	return append([]string(nil), tb.columns...)
}

func (k Kind) table() (table, error) {
	tb, ok := tables[k]
	if !ok {
		return table{}, fmt.Errorf("%w: %s", ErrUnsupportedKind, k)
	}
	return tb, nil
}

func (tb table) insertSQL() string {
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(tb.columns)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", tb.name, strings.Join(tb.columns, ", "), marks)
}

func (tb table) selectSQL() string {
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(tb.columns, ", "), tb.name)
}
