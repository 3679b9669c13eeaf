package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("America/Detroit")
	if err != nil {
		panic(err)
	}
}

// force the clock into campus time because the servers may land
// in any region, and staleness decisions compare calendar days via
// <time.Time>.Year()/Month()/Day()
func Now() time.Time {
	return time.Now().In(Location)
}

// reports whether both instants fall on the same campus calendar day
func SameDay(a, b time.Time) bool {
	a = a.In(Location)
	b = b.In(Location)
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// the YYYY-MM-DD form of a given instant in campus time
func FormatDate(t time.Time) string {
	return t.In(Location).Format("2006-01-02")
}
