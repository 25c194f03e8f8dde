package timex

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/finanzas/internal/common"
)

// Layouts accepted by ParseInstant, tried in order. The last two cover the
// "2024-01-05 10:00:00.123456+00" style produced by Postgres text output.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateOnly,
	"2006-01-02 15:04:05.999999Z07:00",
	"2006-01-02 15:04:05.999999Z07",
}

// ParseInstant parses s using the first matching layout. Values without an
// offset are read as UTC.
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparseable date %q", common.ErrDataFormat, s)
}

// StorageLayout is the fixed-width text form used for dates in SQLite, so
// lexical order of the column matches chronological order.
const StorageLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatInstant renders t in StorageLayout, always in UTC.
func FormatInstant(t time.Time) string {
	return t.UTC().Format(StorageLayout)
}

// Instant is a sql.Scanner/driver.Valuer for date columns that may come back
// as native timestamps or as text.
type Instant struct {
	Time  time.Time
	Valid bool
}

func (i *Instant) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		i.Time, i.Valid = time.Time{}, false
		return nil
	case time.Time:
		i.Time, i.Valid = v, true
		return nil
	case string:
		return i.parse(v)
	case []byte:
		return i.parse(string(v))
	default:
		return fmt.Errorf("%w: cannot scan %T into date", common.ErrDataFormat, src)
	}
}

func (i *Instant) parse(s string) error {
	t, err := ParseInstant(s)
	if err != nil {
		return err
	}
	i.Time, i.Valid = t, true
	return nil
}

// Value stores the instant as StorageLayout text.
func (i Instant) Value() (driver.Value, error) {
	if !i.Valid {
		return nil, nil
	}
	return FormatInstant(i.Time), nil
}
