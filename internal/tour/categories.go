package tour

import (
	"net/url"
	"sort"
	"strconv"

	"tourapi/internal/platform/tourapi"
)

// Category maps an inbound type to its upstream list call.
type Category struct {
	Name          string
	Endpoint      string
	ContentTypeID string
	// Festival restricts the list to festivals running from today on.
	Festival bool
	Extra    map[string]string
}

var categories = map[string]Category{
	"event":   {Name: "event", Endpoint: tourapi.EndpointSearchFestival, Festival: true},
	"stay":    {Name: "stay", Endpoint: tourapi.EndpointSearchStay},
	"trip":    {Name: "trip", Endpoint: tourapi.EndpointAreaBasedList, ContentTypeID: "12"},
	"food":    {Name: "food", Endpoint: tourapi.EndpointAreaBasedList, ContentTypeID: "39"},
	"culture": {Name: "culture", Endpoint: tourapi.EndpointAreaBasedList, ContentTypeID: "14"},
	"leisure": {Name: "leisure", Endpoint: tourapi.EndpointAreaBasedList, ContentTypeID: "28"},
	"shop":    {Name: "shop", Endpoint: tourapi.EndpointAreaBasedList, ContentTypeID: "38"},
	"cafe": {
		Name:          "cafe",
		Endpoint:      tourapi.EndpointAreaBasedList,
		ContentTypeID: "39",
		Extra:         map[string]string{"cat1": "A05", "cat2": "A0502", "cat3": "A05020900"},
	},
}

// LookupCategory returns the category registered under name.
func LookupCategory(name string) (Category, bool) {
	c, ok := categories[name]
	return c, ok
}

// Categories lists the supported category names in sorted order.
func Categories() []string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Params builds the upstream query for one page. today is formatted as
// YYYYMMDD.
func (c Category) Params(q Query, areaCode, today string) url.Values {
	v := url.Values{}
	v.Set("numOfRows", strconv.Itoa(q.NumOfRows))
	v.Set("pageNo", strconv.Itoa(q.PageNo))
	v.Set("arrange", "Q")
	v.Set("areaCode", areaCode)
	if c.ContentTypeID != "" {
		v.Set("contentTypeId", c.ContentTypeID)
	}
	if c.Festival {
		v.Set("eventStartDate", today)
	}
	for k, val := range c.Extra {
		v.Set(k, val)
	}
	return v
}
