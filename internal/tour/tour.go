package tour

import (
	"errors"
	"fmt"
)

// ErrInvalidCategory is returned for a category outside the supported set.
var ErrInvalidCategory = errors.New("invalid category")

const (
	DefaultNumOfRows = 20
	DefaultPageNo    = 1
	MaxNumOfRows     = 100
)

// Query selects one page of one category.
type Query struct {
	Type      string
	PageNo    int `validate:"gte=1"`
	NumOfRows int `validate:"min=1,max=100"`
}

// signature keys the result cache.
func (q Query) signature() string {
	return fmt.Sprintf("%s_%d_%d", q.Type, q.PageNo, q.NumOfRows)
}
