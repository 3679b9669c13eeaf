package catalog

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
)

// Hall describes one dining location. SourceSlug is the identifier
// eatatstate.msu.edu uses in menu urls; it is kept percent-encoded
// because the site expects it verbatim in the path.
type Hall struct {
	ID          string
	DisplayName string
	SourceSlug  string
	Latitude    float64
	Longitude   float64
}

var halls = []Hall{
	{
		ID:          "snyphi",
		DisplayName: "Snyder-Phillips (The Gallery)",
		SourceSlug:  "The%20Gallery%20at%20Snyder%20Phillips",
		Latitude:    42.73022289349873,
		Longitude:   -84.47344892521157,
	},
	{
		ID:          "brody",
		DisplayName: "Brody Square",
		SourceSlug:  "Brody%20Square",
		Latitude:    42.731379562909424,
		Longitude:   -84.49526567905579,
	},
	{
		ID:          "case",
		DisplayName: "Case Hall (South Pointe)",
		SourceSlug:  "South%20Pointe%20at%20Case",
		Latitude:    42.724567591646384,
		Longitude:   -84.48870729559268,
	},
	{
		ID:          "owen",
		DisplayName: "Owen Hall (Thrive)",
		SourceSlug:  "Thrive%20at%20Owen",
		Latitude:    42.72657035421706,
		Longitude:   -84.47055947007354,
	},
	{
		ID:          "shaw",
		DisplayName: "Shaw Hall (The Vista)",
		SourceSlug:  "The%20Vista%20at%20Shaw",
		Latitude:    42.726786523682144,
		Longitude:   -84.47529606042431,
	},
	{
		ID:          "akers",
		DisplayName: "The Edge at Akers",
		SourceSlug:  "The%20Edge%20at%20Akers",
		Latitude:    42.72434170664002,
		Longitude:   -84.46480484532314,
	},
	{
		ID:          "landon",
		DisplayName: "Landon Hall (Heritage Commons)",
		SourceSlug:  "Heritage%20Commons%20at%20Landon",
		Latitude:    42.73380788983037,
		Longitude:   -84.48514502978489,
	},
	{
		ID:          "holden",
		DisplayName: "Holden Hall (Sparty's Market)",
		SourceSlug:  "Sparty%27s%20Market%20at%20Holden",
		Latitude:    42.724305,
		Longitude:   -84.490282,
	},
	{
		ID:          "holmes",
		DisplayName: "Holmes Hall (Sparty's Market)",
		SourceSlug:  "Sparty%27s%20Market%20at%20Holmes",
		Latitude:    42.722613,
		Longitude:   -84.466214,
	},
}

// Halls returns every known dining hall.
func Halls() []Hall {
	out := make([]Hall, len(halls))
	copy(out, halls)
	return out
}

// ResolveSourceSlug maps a hall name (or a fragment of one) to the
// slug the menu site uses. the ui and the site disagree on naming so
// matching is deliberately loose: an exact id/display-name match wins,
// then substring containment in either direction.
func ResolveSourceSlug(name string) (string, error) {
	for _, h := range halls {
		if strings.EqualFold(h.ID, name) || strings.EqualFold(h.DisplayName, name) {
			return h.SourceSlug, nil
		}
	}

	lower := strings.ToLower(name)
	for _, h := range halls {
		if strings.Contains(h.DisplayName, name) || strings.Contains(lower, h.ID) {
			return h.SourceSlug, nil
		}
	}

	// the hyphenated form shows up in older ui code
	if strings.EqualFold(name, "Snyder-Phillips") {
		return halls[0].SourceSlug, nil
	}

	return "", fmt.Errorf("unknown dining hall: %s (closest known hall: %s)", name, closestHall(name))
}

func closestHall(name string) string {
	best := halls[0].DisplayName
	bestDist := math.MaxInt
	for _, h := range halls {
		d := matchr.Levenshtein(strings.ToLower(name), strings.ToLower(h.DisplayName))
		if d < bestDist {
			bestDist = d
			best = h.DisplayName
		}
	}
	return best
}

const earthRadiusMeters = 6371000

// walking on campus paths is longer than the straight line,
// typically by a factor of 1.3-1.5
const walkingMultiplier = 1.4

// WalkingDistance estimates the on-foot distance in meters between two
// points using the haversine formula.
func WalkingDistance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c * walkingMultiplier
}

// Nearest returns every hall ordered by walking distance from the
// given coordinates.
func Nearest(lat, lon float64) []Hall {
	out := Halls()
	sort.SliceStable(out, func(i, j int) bool {
		di := WalkingDistance(lat, lon, out[i].Latitude, out[i].Longitude)
		dj := WalkingDistance(lat, lon, out[j].Latitude, out[j].Longitude)
		return di < dj
	})
	return out
}
