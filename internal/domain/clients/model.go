package clients

import (
	"fmt"
	"strings"
	"time"

	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/store"
)

const entity = "client"

type Client struct {
	ID          string
	FirstName   string
	LastName    string
	CompanyName string
	Email       string
	Phone       string
	CreatedAt   time.Time
}

// New builds a client from raw fields and validates it without a key.
func New(f domain.Fields) (*Client, error) {
	c := &Client{}
	if err := c.Apply(f); err != nil {
		return nil, err
	}
	if err := c.Validate(false); err != nil {
		return nil, err
	}
	return c, nil
}

// Apply copies the non-empty fields onto c.
func (c *Client) Apply(f domain.Fields) error {
	if v, ok := f.String("client_key"); ok {
		c.ID = v
	}
	if v, ok := f.String("first_name"); ok {
		c.FirstName = v
	}
	if v, ok := f.String("last_name"); ok {
		c.LastName = v
	}
	if v, ok := f.String("company_name"); ok {
		c.CompanyName = v
	}
	if v, ok := f.String("email"); ok {
		c.Email = strings.ToLower(v)
	}
	if v, ok := f.String("phone"); ok {
		c.Phone = v
	}
	t, ok, err := f.Time(entity, "created_at")
	if err != nil {
		return err
	}
	if ok {
		c.CreatedAt = t
	}
	return nil
}

func (c *Client) Validate(checkID bool) error {
	if c.FirstName == "" && c.CompanyName == "" {
		return domain.Invalid(entity, "first name and company name cannot both be empty")
	}
	if c.FirstName != "" && len([]rune(c.FirstName)) < 3 {
		return domain.Invalid(entity, "first name cannot be less than 3 characters")
	}
	if c.CompanyName != "" && len([]rune(c.CompanyName)) < 3 {
		return domain.Invalid(entity, "company name cannot be less than 3 characters")
	}
	if c.Phone == "" {
		return domain.Invalid(entity, "phone cannot be empty")
	}
	if !digitsOnly(c.Phone) {
		return domain.Invalid(entity, "phone must contain digits only, got %q", c.Phone)
	}
	if checkID && c.ID == "" {
		return domain.Invalid(entity, "client key is required")
	}
	return nil
}

// DisplayName is "First Last" for people and the company name otherwise.
func (c *Client) DisplayName() string {
	if c.FirstName == "" {
		return c.CompanyName
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s", c.FirstName, c.LastName))
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func (c *Client) row(key string, createdAt time.Time) []any {
	return []any{key, c.FirstName, c.LastName, c.CompanyName, c.Email, c.Phone, domain.FormatTime(createdAt)}
}

func (c *Client) updateRow() []any {
	return []any{c.FirstName, c.LastName, c.CompanyName, c.Email, c.Phone, c.ID}
}

// FromRow rebuilds a stored client. Rows are trusted, so no validation runs.
func FromRow(r store.Row) *Client {
	c := &Client{
		ID:          r.String(0),
		FirstName:   r.String(1),
		LastName:    r.String(2),
		CompanyName: r.String(3),
		Email:       r.String(4),
		Phone:       r.String(5),
	}
	c.CreatedAt, _ = domain.ParseTime(r.String(6))
	return c
}
