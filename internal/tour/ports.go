package tour

import (
	"context"
	"net/url"

	"tourapi/internal/platform/tourapi"
)

//go:generate mockgen -source=ports.go -destination=mock_upstream_test.go -package=tour

// Upstream is the subset of the tourism API client the list aggregator uses.
type Upstream interface {
	List(ctx context.Context, endpoint string, params url.Values) ([]tourapi.Item, error)
	Detail(ctx context.Context, contentID string) (tourapi.Item, error)
}
