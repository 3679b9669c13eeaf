package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const menuPage = `
<html><body>
<div class="eas-view-group">
	<h3 class="venue-title">Grill</h3>
	<div class="eas-list">
		<div class="meal-time">Dinner</div>
		<ul>
			<li class="menu-item"><div class="meal-title">Grilled Chicken</div></li>
			<li class="menu-item"><div class="meal-title">  Cheeseburger  </div></li>
		</ul>
	</div>
	<div class="eas-list">
		<div class="meal-time">Breakfast</div>
		<ul>
			<li class="menu-item"><div class="meal-title">Scrambled Eggs</div></li>
		</ul>
	</div>
	<div class="eas-list">
		<div class="meal-time">Late Night</div>
		<ul>
			<li class="menu-item"><div class="meal-title">Quesadilla</div></li>
		</ul>
	</div>
	<div class="eas-list">
		<div class="meal-time">Lunch</div>
		<ul>
			<li class="menu-item"><div class="meal-title">Grilled Chicken</div></li>
		</ul>
	</div>
</div>
<div class="eas-view-group">
	<h3 class="venue-title">Salad Bar</h3>
	<div class="eas-list">
		<div class="meal-time">Lunch</div>
		<ul>
			<li class="menu-item"><div class="meal-title">Garden Salad</div></li>
			<li class="menu-item"><div class="meal-title">Caesar Salad</div></li>
		</ul>
	</div>
	<div class="eas-list">
		<div class="meal-time">Dinner</div>
		<ul></ul>
	</div>
</div>
<div class="eas-view-group">
	<h3 class="venue-title">Closed Station</h3>
</div>
</body></html>`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(ClientOptions{
		BaseURL: srv.URL + "/menu/",
		Timeout: time.Second * 5,
	})
}

func TestFetch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(menuPage))
	})

	date := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	result := client.Fetch(context.Background(), "brody", date)

	require.True(t, result.Success)
	require.Equal(t, "brody", result.Hall)
	require.Equal(t, "2026-08-30", result.Date)
	require.Len(t, result.Stations, 2)

	grill := result.Stations[0]
	require.Equal(t, "Grill", grill.Name)
	// meals come back in chronological order regardless of page order
	require.Equal(t, "Breakfast", grill.Meals[0].Name)
	require.Equal(t, "Lunch", grill.Meals[1].Name)
	require.Equal(t, "Dinner", grill.Meals[2].Name)
	require.Equal(t, "Late Night", grill.Meals[3].Name)

	require.Equal(t, []string{"Grilled Chicken", "Cheeseburger"}, grill.Meals[2].Items)

	// the empty dinner list and the station with no meals are dropped
	expected := Station{
		Name: "Salad Bar",
		Meals: []Meal{
			{Name: "Lunch", Items: []string{"Garden Salad", "Caesar Salad"}},
		},
	}
	if diff := cmp.Diff(expected, result.Stations[1]); diff != "" {
		t.Fatal(diff)
	}
}

func TestFetchUnknownHall(t *testing.T) {
	var requests atomic.Int64
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(menuPage))
	})

	result := client.Fetch(context.Background(), "Hogwarts Great Hall", time.Now())

	require.False(t, result.Success)
	require.Equal(t, FailureUnknownHall, result.Failure)
	require.Contains(t, result.Error, "unknown dining hall: Hogwarts Great Hall")
	// an unknown hall never touches the network
	require.EqualValues(t, 0, requests.Load())
}

func TestFetchNoMenuData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>nothing scheduled</p></body></html>`))
	})

	result := client.Fetch(context.Background(), "brody", time.Now())

	require.False(t, result.Success)
	require.Equal(t, FailureContentAbsent, result.Failure)
	require.Equal(t, "No menu data found for this date", result.Error)
}

func TestFetchServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	result := client.Fetch(context.Background(), "brody", time.Now())

	require.False(t, result.Success)
	require.Equal(t, FailureTransport, result.Failure)
	require.Contains(t, result.Error, "Network error:")
}

func TestFetchUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	client := NewClient(ClientOptions{
		BaseURL: srv.URL + "/menu/",
		Timeout: time.Second,
	})

	result := client.Fetch(context.Background(), "brody", time.Now())

	require.False(t, result.Success)
	require.Equal(t, FailureTransport, result.Failure)
	require.Contains(t, result.Error, "Network error:")
}

func TestItemsByStation(t *testing.T) {
	result := Result{
		Success: true,
		Stations: []Station{
			{Name: "Grill", Meals: []Meal{
				{Name: "Lunch", Items: []string{"Grilled Chicken"}},
				{Name: "Dinner", Items: []string{"Cheeseburger"}},
			}},
			{Name: "Salad Bar", Meals: []Meal{
				{Name: "Lunch", Items: []string{"Garden Salad"}},
			}},
		},
	}

	// meal time matching ignores case
	byStation := ItemsByStation(result, "lunch")
	require.Equal(t, map[string][]string{
		"Grill":     {"Grilled Chicken"},
		"Salad Bar": {"Garden Salad"},
	}, byStation)

	flat := AllItemsForMeal(result, "Lunch")
	require.Equal(t, []string{"Grilled Chicken", "Garden Salad"}, flat)

	require.Empty(t, AllItemsForMeal(Result{}, "Lunch"))
	require.Empty(t, ItemsByStation(result, "Breakfast"))
}
