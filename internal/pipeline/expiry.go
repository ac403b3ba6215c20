package pipeline

import "time"

// FilterExpired drops records whose deadline is before now minus grace.
// A nil deadline is treated as non-expiring and always kept; the grace
// window absorbs timezone and parse skew around midnight.
func FilterExpired(records []CanonicalRecord, now time.Time, grace time.Duration) []CanonicalRecord {
	cutoff := now.Add(-grace)
	out := make([]CanonicalRecord, 0, len(records))
	for _, r := range records {
		if r.Deadline != nil && r.Deadline.Before(cutoff) {
			continue
		}
		out = append(out, r)
	}
	return out
}
