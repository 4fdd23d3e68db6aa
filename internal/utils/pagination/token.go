package pagination

import (
	"encoding/base64"
	"fmt"
	"time"
)

const timeFormat = time.RFC3339Nano

// EncodeEntryToken creates an opaque cursor from the entry date of the last
// item on a page. Entry listings are ordered by entry_date DESC, so the
// next page starts strictly before this date.
func EncodeEntryToken(entryDate time.Time) string {
	return base64.StdEncoding.EncodeToString([]byte(entryDate.Format(timeFormat)))
}

// DecodeEntryToken parses a cursor previously produced by EncodeEntryToken.
func DecodeEntryToken(token string) (time.Time, error) {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	entryDate, err := time.Parse(timeFormat, string(decoded))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}
	return entryDate, nil
}
