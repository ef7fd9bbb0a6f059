// Package transfer writes row sets to CSV, XLSX and PDF files and reads
// CSV and XLSX files back as lazy record sequences.
package transfer

import (
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain"
)

type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
	PDF  Format = "pdf"
)

// ParseFormat accepts a format name or a file extension, with or without the dot.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "csv":
		return CSV, nil
	case "xlsx", "xls":
		return XLSX, nil
	case "pdf":
		return PDF, nil
	}
	return "", domain.Invalid("file", "unsupported file type %q", s)
}

func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case time.Time:
		return domain.FormatTime(x)
	}
	return cast.ToString(v)
}
