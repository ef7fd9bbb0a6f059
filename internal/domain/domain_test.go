package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorWrapping(t *testing.T) {
	err := fmt.Errorf("create client: %w", Invalid("client", "phone cannot be empty"))
	assert.True(t, IsValidation(err))
	assert.False(t, IsValidation(errors.New("boom")))

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "phone cannot be empty", ve.Reason)
	assert.Equal(t, "client: validation: phone cannot be empty", ve.Error())
}

func TestFieldsFalsyValuesAreAbsent(t *testing.T) {
	f := Fields{"name": "  ", "n": 0, "s": "", "price": "0", "nil": nil}

	_, ok := f.String("name")
	assert.False(t, ok)
	_, ok, err := f.Int("x", "n")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = f.Int("x", "s")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = f.Decimal("x", "price")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok = f.String("nil")
	assert.False(t, ok)
}

func TestFieldsCoercion(t *testing.T) {
	f := Fields{
		"a": " 12 ", "b": int32(7), "c": "abc",
		"p": "60.50", "q": 29000, "r": decimal.RequireFromString("1.25"),
		"t": "2025-03-01 10:00:00",
	}

	n, ok, err := f.Int("x", "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(12), n)

	n, _, err = f.Int("x", "b")
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	_, _, err = f.Int("x", "c")
	assert.True(t, IsValidation(err))

	d, _, err := f.Decimal("x", "p")
	require.NoError(t, err)
	assert.Equal(t, "60.5", d.String())
	d, _, err = f.Decimal("x", "q")
	require.NoError(t, err)
	assert.Equal(t, "29000", d.String())
	d, _, err = f.Decimal("x", "r")
	require.NoError(t, err)
	assert.Equal(t, "1.25", d.String())

	tm, ok, err := f.Time("x", "t")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.March, tm.Month())
	assert.Equal(t, "2025-03-01 10:00:00", FormatTime(tm))
}
