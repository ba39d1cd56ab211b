// Package biztime centralizes time handling. All storage and transport
// use UTC; implicit local timezone is prohibited.
package biztime

import "time"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// DateKey formats t as a yyyymmdd string in UTC, used for ticket number
// prefixes.
func DateKey(t time.Time) string {
	return t.UTC().Format("20060102")
}
