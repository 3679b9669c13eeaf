package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveSourceSlug(t *testing.T) {
	{
		slug, err := ResolveSourceSlug("brody")
		require.NoError(t, err)
		require.Equal(t, "Brody%20Square", slug)
	}
	{
		slug, err := ResolveSourceSlug("Brody Square")
		require.NoError(t, err)
		require.Equal(t, "Brody%20Square", slug)
	}
	{
		// substring of the display name
		slug, err := ResolveSourceSlug("Shaw Hall")
		require.NoError(t, err)
		require.Equal(t, "The%20Vista%20at%20Shaw", slug)
	}
	{
		// hall id buried inside a longer ui label
		slug, err := ResolveSourceSlug("Owen Graduate Hall")
		require.NoError(t, err)
		require.Equal(t, "Thrive%20at%20Owen", slug)
	}
	{
		slug, err := ResolveSourceSlug("Snyder-Phillips")
		require.NoError(t, err)
		require.Equal(t, "The%20Gallery%20at%20Snyder%20Phillips", slug)
	}
}

func TestResolveSourceSlugUnknown(t *testing.T) {
	_, err := ResolveSourceSlug("Hogwarts Great Hall")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown dining hall: Hogwarts Great Hall")
	require.Contains(t, err.Error(), "closest known hall:")
}

func TestHallsIsACopy(t *testing.T) {
	a := Halls()
	a[0].ID = "mutated"
	b := Halls()
	require.NotEqual(t, "mutated", b[0].ID)
}

func TestWalkingDistance(t *testing.T) {
	// brody to akers spans most of campus, roughly 2.5km on foot
	d := WalkingDistance(
		42.731379562909424, -84.49526567905579,
		42.72434170664002, -84.46480484532314,
	)
	require.Greater(t, d, 2000.0)
	require.Less(t, d, 5000.0)

	require.Zero(t, WalkingDistance(42.73, -84.48, 42.73, -84.48))
}

func TestNearest(t *testing.T) {
	// standing at brody square, brody should come first and akers
	// (across campus) should come last
	ordered := Nearest(42.731379562909424, -84.49526567905579)
	require.Len(t, ordered, len(Halls()))
	require.Equal(t, "brody", ordered[0].ID)

	prev := -1.0
	for _, h := range ordered {
		d := WalkingDistance(42.731379562909424, -84.49526567905579, h.Latitude, h.Longitude)
		require.GreaterOrEqual(t, d, prev)
		prev = d
	}
}
