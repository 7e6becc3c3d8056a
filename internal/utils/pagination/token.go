package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// EncodeEntryToken creates a base64 token from an entry date, creation time
// and entry ID. Entry listings are keyset-paginated on the unique tuple
// (date, created_at, entry_id) so a token restarts the sequence exactly where
// the previous page stopped, even when several entries share a date and
// creation time.
func EncodeEntryToken(entryDate time.Time, createdAt time.Time, entryID string) string {
	tokenStr := fmt.Sprintf("%s|%s|%s", entryDate.Format(timeFormat), createdAt.Format(timeFormat), entryID)
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeEntryToken parses an entry listing token back into its date,
// creation-time and entry ID components.
func DecodeEntryToken(token string) (time.Time, time.Time, string, error) {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, time.Time{}, "", fmt.Errorf("invalid pagination token (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decoded), "|", 3)
	if len(parts) != 3 {
		return time.Time{}, time.Time{}, "", fmt.Errorf("invalid pagination token (field count)")
	}

	entryDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, "", fmt.Errorf("invalid pagination token (date parse): %w", err)
	}
	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, "", fmt.Errorf("invalid pagination token (created_at parse): %w", err)
	}
	if parts[2] == "" {
		return time.Time{}, time.Time{}, "", fmt.Errorf("invalid pagination token (empty entry id)")
	}
	return entryDate, createdAt, parts[2], nil
}

// EncodeCodeToken creates a token from a single code field. Account listings
// are keyset-paginated on the lexicographic account code.
func EncodeCodeToken(code string) string {
	return base64.StdEncoding.EncodeToString([]byte(code))
}

// DecodeCodeToken decodes a code-based pagination token.
func DecodeCodeToken(token string) (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("invalid pagination token (base64 decode): %w", err)
	}
	if len(decoded) == 0 {
		return "", fmt.Errorf("invalid pagination token (empty)")
	}
	return string(decoded), nil
}
