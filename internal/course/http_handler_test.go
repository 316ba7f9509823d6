package course

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tourapi/internal/cache"
	"tourapi/internal/httpx"
	"tourapi/internal/limiter"
	"tourapi/internal/platform/tourapi"
)

func serve(handler *HTTPHandler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	handler.List(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHTTPHandler_List(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		handler := NewHTTPHandler(f.svc, zap.NewNop())

		f.upstream.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return(coursesOf("c1"), nil)
		f.upstream.EXPECT().DetailInfo(gomock.Any(), "c1", ContentTypeID).Return(placesOf("p1"), nil)
		f.upstream.EXPECT().Detail(gomock.Any(), gomock.Any()).Times(2).DoAndReturn(detailFor)

		w := serve(handler, "/api/course?numOfRows=1")

		assert.Equal(t, http.StatusOK, w.Code)
		var body []map[string]any
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		require.Len(t, body, 1)
		assert.Equal(t, "c1", body[0]["contentid"])
		assert.Equal(t, "overview-c1", body[0]["overview"])
		places := body[0]["places"].([]any)
		require.Len(t, places, 1)
		assert.Equal(t, "Seoul", places[0].(map[string]any)["addr1"])
	})

	t.Run("degraded course serializes nulls", func(t *testing.T) {
		f := newFixture(t)
		handler := NewHTTPHandler(f.svc, zap.NewNop())

		f.upstream.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return(coursesOf("c1"), nil)
		f.upstream.EXPECT().DetailInfo(gomock.Any(), "c1", ContentTypeID).Return(nil, tourapi.ErrUpstreamTimeout)
		f.upstream.EXPECT().Detail(gomock.Any(), "c1").Return(nil, tourapi.ErrUpstreamTimeout)

		w := serve(handler, "/api/course")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"contentid":"c1","contenttypeid":"25","title":"course-c1","firstimage":"c1.jpg","overview":null,"places":[]}]`, w.Body.String())
	})

	t.Run("invalid numOfRows", func(t *testing.T) {
		f := newFixture(t)
		handler := NewHTTPHandler(f.svc, zap.NewNop())

		for _, target := range []string{"/api/course?numOfRows=0", "/api/course?numOfRows=101", "/api/course?numOfRows=x"} {
			w := serve(handler, target)
			assert.Equal(t, http.StatusBadRequest, w.Code, target)

			var resp httpx.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		}
	})

	t.Run("list failure", func(t *testing.T) {
		f := newFixture(t)
		handler := NewHTTPHandler(f.svc, zap.NewNop())

		f.upstream.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tourapi.ErrUpstreamTimeout)

		w := serve(handler, "/api/course")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var resp httpx.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "UPSTREAM_FAILED", resp.Error.Code)
		assert.Equal(t, "upstream call failed", resp.Error.Message)
	})
}

func TestHTTPHandler_List_DoesNotExposeServiceKey(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	dead.Close()

	client := tourapi.NewClient(tourapi.Config{
		BaseURL:    dead.URL,
		ServiceKey: "SUPERSECRETKEY",
		MobileOS:   "ETC",
		MobileApp:  "AppTest",
		Timeout:    time.Second,
	})
	svc := NewService(client,
		cache.New[tourapi.Item]("detail", cache.Options{}),
		cache.New[Course]("course-result", cache.Options{}),
		limiter.New("place-detail", 10),
	)

	w := serve(NewHTTPHandler(svc, zap.NewNop()), "/api/course")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "SUPERSECRETKEY")
	assert.NotContains(t, w.Body.String(), "serviceKey")
}
