package course

import "tourapi/internal/platform/tourapi"

// ContentTypeID is the upstream content type of travel courses.
const ContentTypeID = "25"

const (
	DefaultNumOfRows = 20
	MaxNumOfRows     = 100
)

// Course is one travel course with the places along it. Overview is nil
// when it could not be fetched; Places is never nil.
type Course struct {
	ContentID     string         `json:"contentid"`
	ContentTypeID string         `json:"contenttypeid"`
	Title         string         `json:"title"`
	FirstImage    string         `json:"firstimage"`
	Overview      *string        `json:"overview"`
	Places        []tourapi.Item `json:"places"`
}

// Query selects the number of courses to aggregate.
type Query struct {
	NumOfRows int `validate:"min=1,max=100"`
}

func newCourse(item tourapi.Item) Course {
	return Course{
		ContentID:     item.String("contentid"),
		ContentTypeID: item.String("contenttypeid"),
		Title:         item.String("title"),
		FirstImage:    item.String("firstimage"),
		Places:        []tourapi.Item{},
	}
}
