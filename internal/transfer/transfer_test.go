package transfer_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/transfer"
)

var (
	columns = []string{"first_name", "last_name", "company_name", "email", "phone"}
	rows    = [][]any{
		{"Ann", "Lee", "", "ann@x.io", "0801"},
		{"", "", "Acme Ltd", nil, "0802"},
	}
)

func collect(t *testing.T, path string, format transfer.Format, hasHeader bool) []transfer.Record {
	t.Helper()
	var out []transfer.Record
	for rec, err := range transfer.Read(path, format, hasHeader) {
		require.NoError(t, err)
		out = append(out, rec)
	}
	return out
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]transfer.Format{".csv": transfer.CSV, "XLSX": transfer.XLSX, ".xls": transfer.XLSX, "pdf": transfer.PDF} {
		got, err := transfer.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := transfer.ParseFormat(".docx")
	assert.True(t, domain.IsValidation(err))
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []transfer.Format{transfer.CSV, transfer.XLSX} {
		t.Run(string(format), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "clients."+string(format))
			require.NoError(t, transfer.Export(path, format, "Clients", columns, rows))

			recs := collect(t, path, format, true)
			require.Len(t, recs, 2)
			f := recs[0].Fields(nil)
			assert.Equal(t, "Ann", f["first_name"])
			assert.Equal(t, "0801", f["phone"])
			phone, _ := recs[1].Fields(nil).String("phone")
			assert.Equal(t, "0802", phone)

			recs = collect(t, path, format, false)
			require.Len(t, recs, 3)
			assert.Equal(t, "first_name", recs[0].Fields(columns)["first_name"])
		})
	}
}

func TestHeaderKeysAreNormalised(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.csv")
	require.NoError(t, os.WriteFile(path, []byte("Plan Name,Duration,Plan Type,Price\nDay Pass,1,daily,5.50\n\n"), 0o600))

	recs := collect(t, path, transfer.CSV, true)
	require.Len(t, recs, 1)
	f := recs[0].Fields(nil)
	assert.Equal(t, "Day Pass", f["plan_name"])
	assert.Equal(t, "5.50", f["price"])
}

func TestShortRowsLeaveFieldsOut(t *testing.T) {
	rec := transfer.Record{Values: []string{"Ann", "Lee"}}
	f := rec.Fields(columns)
	assert.Len(t, f, 2)
	_, ok := f["phone"]
	assert.False(t, ok)
}

func TestPDF(t *testing.T) {
	var buf bytes.Buffer
	data := [][]any{{"2025-01-01 10:00:00", "Ann Lee", "Team", decimal.RequireFromString("60.00"), 3}}
	require.NoError(t, transfer.Write(&buf, transfer.PDF, "Subscriptions", []string{"DATE", "CLIENT", "PLAN", "PRICE", "COUNT"}, data))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))

	path := filepath.Join(t.TempDir(), "x.pdf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	for _, err := range transfer.Read(path, transfer.PDF, false) {
		assert.True(t, domain.IsValidation(err))
	}
}

func TestReadMissingFile(t *testing.T) {
	n := 0
	for _, err := range transfer.Read(filepath.Join(t.TempDir(), "none.csv"), transfer.CSV, true) {
		assert.Error(t, err)
		n++
	}
	assert.Equal(t, 1, n)
}
