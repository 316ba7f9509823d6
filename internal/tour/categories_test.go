package tour

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tourapi/internal/platform/tourapi"
)

func TestCategoryParams(t *testing.T) {
	q := Query{PageNo: 2, NumOfRows: 30}

	event, ok := LookupCategory("event")
	assert.True(t, ok)
	assert.Equal(t, tourapi.EndpointSearchFestival, event.Endpoint)
	p := event.Params(q, "1", "20261016")
	assert.Equal(t, "20261016", p.Get("eventStartDate"))
	assert.Equal(t, "", p.Get("contentTypeId"))
	assert.Equal(t, "2", p.Get("pageNo"))
	assert.Equal(t, "30", p.Get("numOfRows"))
	assert.Equal(t, "Q", p.Get("arrange"))
	assert.Equal(t, "1", p.Get("areaCode"))

	cafe, _ := LookupCategory("cafe")
	p = cafe.Params(q, "1", "20261016")
	assert.Equal(t, "39", p.Get("contentTypeId"))
	assert.Equal(t, "A05", p.Get("cat1"))
	assert.Equal(t, "A0502", p.Get("cat2"))
	assert.Equal(t, "A05020900", p.Get("cat3"))
	assert.Equal(t, "", p.Get("eventStartDate"))

	stay, _ := LookupCategory("stay")
	assert.Equal(t, tourapi.EndpointSearchStay, stay.Endpoint)

	for name, typeID := range map[string]string{"trip": "12", "food": "39", "culture": "14", "leisure": "28", "shop": "38"} {
		c, ok := LookupCategory(name)
		assert.True(t, ok, name)
		assert.Equal(t, tourapi.EndpointAreaBasedList, c.Endpoint, name)
		assert.Equal(t, typeID, c.Params(q, "1", "").Get("contentTypeId"), name)
	}
}

func TestLookupCategory_Unknown(t *testing.T) {
	_, ok := LookupCategory("bogus")
	assert.False(t, ok)
	assert.Equal(t, []string{"cafe", "culture", "event", "food", "leisure", "shop", "stay", "trip"}, Categories())
}
