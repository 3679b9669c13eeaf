package scraper

import "strings"

// FailureKind classifies why a fetch produced no menu. callers use it
// for logging; control flow only cares about Result.Success.
type FailureKind string

const (
	FailureUnknownHall   FailureKind = "unknown_hall"
	FailureTransport     FailureKind = "transport"
	FailureContentAbsent FailureKind = "content_absent"
	FailureParse         FailureKind = "parse"
)

type Meal struct {
	Name  string
	Items []string
}

type Station struct {
	Name  string
	Meals []Meal
}

// Result is the parser's sole output contract. Hall and Date are
// echoed back on both success and failure so asynchronous callers can
// correlate outcomes.
type Result struct {
	Success  bool
	Failure  FailureKind
	Error    string
	Hall     string
	Date     string
	Stations []Station
}

func failure(kind FailureKind, message, hall, date string) Result {
	return Result{
		Failure: kind,
		Error:   message,
		Hall:    hall,
		Date:    date,
	}
}

// AllItemsForMeal flattens every station's items for one meal time.
func AllItemsForMeal(r Result, mealTime string) []string {
	var items []string
	if !r.Success {
		return items
	}
	for _, station := range r.Stations {
		for _, meal := range station.Meals {
			if strings.EqualFold(meal.Name, mealTime) {
				items = append(items, meal.Items...)
			}
		}
	}
	return items
}

// ItemsByStation groups one meal time's items under their station
// names.
func ItemsByStation(r Result, mealTime string) map[string][]string {
	itemsByStation := map[string][]string{}
	if !r.Success {
		return itemsByStation
	}
	for _, station := range r.Stations {
		for _, meal := range station.Meals {
			if strings.EqualFold(meal.Name, mealTime) {
				itemsByStation[station.Name] = append([]string{}, meal.Items...)
			}
		}
	}
	return itemsByStation
}
