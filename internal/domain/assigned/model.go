package assigned

import (
	"time"

	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain"
)

const entity = "assigned_client"

// AssignedClient grants a client access under someone else's subscription.
type AssignedClient struct {
	SubscriptionID string
	ClientID       string
	CreatedAt      time.Time
}

func New(f domain.Fields) (*AssignedClient, error) {
	a := &AssignedClient{}
	if s, ok := f.String("subscription_key"); ok {
		a.SubscriptionID = s
	}
	if s, ok := f.String("client_key"); ok {
		a.ClientID = s
	}
	t, ok, err := f.Time(entity, "created_at")
	if err != nil {
		return nil, err
	}
	if ok {
		a.CreatedAt = t
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *AssignedClient) Validate() error {
	if a.SubscriptionID == "" {
		return domain.Invalid(entity, "subscription key is required")
	}
	if a.ClientID == "" {
		return domain.Invalid(entity, "client key is required")
	}
	return nil
}
