package scraper

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"spartyspreads-backend/lib/htmlutil"
	"spartyspreads-backend/lib/telemetry"
	"spartyspreads-backend/lib/timezone"
	"spartyspreads-backend/services/menus/catalog"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/menus/scraper")

const DefaultBaseURL = "https://eatatstate.msu.edu/menu/"

var mealSortOrder = map[string]int{
	"Breakfast":  0,
	"Lunch":      1,
	"Dinner":     2,
	"Late Night": 3,
}

type Client struct {
	http    *resty.Client
	baseURL string
}

type ClientOptions struct {
	// defaults to DefaultBaseURL; overridden in tests
	BaseURL string
	Timeout time.Duration
}

func NewClient(opts ClientOptions) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 10
	}

	client := resty.New()
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	client.SetTimeout(opts.Timeout)
	telemetry.InstrumentResty(client, "services/menus/http")

	return &Client{
		http:    client,
		baseURL: opts.BaseURL,
	}
}

// Fetch downloads and parses one hall's menu page for a calendar date.
// failures are encoded in the returned Result, never as an error.
func (c *Client) Fetch(ctx context.Context, hall string, date time.Time) Result {
	ctx, span := tracer.Start(ctx, "Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("hall", hall))

	dateStr := timezone.FormatDate(date)

	slug, err := catalog.ResolveSourceSlug(hall)
	if err != nil {
		span.SetStatus(codes.Error, "unknown hall")
		return failure(FailureUnknownHall, err.Error(), hall, dateStr)
	}

	link := c.baseURL + slug + "/all/" + dateStr
	span.SetAttributes(attribute.String("url", link))

	res, err := c.http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch menu page")
		return failure(FailureTransport, fmt.Sprintf("Network error: %s", err.Error()), hall, dateStr)
	}
	if res.StatusCode() >= 400 {
		span.SetStatus(codes.Error, "menu page returned error status")
		return failure(FailureTransport, fmt.Sprintf("Network error: status %d", res.StatusCode()), hall, dateStr)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return failure(FailureParse, fmt.Sprintf("Parse error: %s", err.Error()), hall, dateStr)
	}

	stations := parseStations(doc)
	if stations == nil {
		return failure(FailureContentAbsent, "No menu data found for this date", hall, dateStr)
	}

	return Result{
		Success:  true,
		Hall:     hall,
		Date:     dateStr,
		Stations: stations,
	}
}

// parseStations walks the station groups of a menu page. a nil return
// means the page had no station markup at all, which is how the site
// renders dates with no published menu.
func parseStations(doc *goquery.Document) []Station {
	groups := doc.Find("div.eas-view-group")
	if groups.Length() == 0 {
		return nil
	}

	stations := []Station{}
	groups.Each(func(_ int, group *goquery.Selection) {
		titleTag := group.Find("h3.venue-title").First()
		if titleTag.Length() == 0 {
			return
		}
		station := Station{
			Name: htmlutil.SelectionText(titleTag),
		}

		group.Find("div.eas-list").Each(func(_ int, mealList *goquery.Selection) {
			mealName := "Unknown Meal"
			mealTag := mealList.Find("div.meal-time").First()
			if mealTag.Length() > 0 {
				mealName = htmlutil.SelectionText(mealTag)
			}

			meal := Meal{Name: mealName}
			itemUl := mealList.Find("ul").First()
			if itemUl.Length() > 0 {
				itemUl.Find("li.menu-item").Each(func(_ int, item *goquery.Selection) {
					itemTitle := item.Find("div.meal-title").First()
					if itemTitle.Length() > 0 {
						meal.Items = append(meal.Items, htmlutil.SelectionText(itemTitle))
					}
				})
			}

			if len(meal.Items) > 0 {
				station.Meals = append(station.Meals, meal)
			}
		})

		sort.SliceStable(station.Meals, func(i, j int) bool {
			return mealOrder(station.Meals[i].Name) < mealOrder(station.Meals[j].Name)
		})

		if len(station.Meals) > 0 {
			stations = append(stations, station)
		}
	})

	return stations
}

func mealOrder(name string) int {
	order, known := mealSortOrder[name]
	if !known {
		return 99
	}
	return order
}
