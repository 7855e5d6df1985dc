package format

import "time"

// ZoneResolver maps coordinates to a timezone; implementations fall back to
// UTC on their own.
type ZoneResolver interface {
	Location(lat, lon float64) *time.Location
}

// DaysGenerator produces the day-of-month labels of the forecast window as
// seen from the user's timezone.
type DaysGenerator struct {
	zones ZoneResolver
	now   func() time.Time
}

// NewDaysGenerator uses time.Now when now is nil. A nil resolver means UTC.
func NewDaysGenerator(zones ZoneResolver, now func() time.Time) *DaysGenerator {
	if now == nil {
		now = time.Now
	}
	return &DaysGenerator{zones: zones, now: now}
}

// Labels returns n zero-padded day-of-month labels starting today. Callers
// compute it once per request and reuse the result.
func (g *DaysGenerator) Labels(lat, lon float64, n int) []string {
	loc := time.UTC
	if g.zones != nil {
		if l := g.zones.Location(lat, lon); l != nil {
			loc = l
		}
	}
	today := g.now().In(loc)

	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, today.AddDate(0, 0, i).Format("02"))
	}
	return out
}
