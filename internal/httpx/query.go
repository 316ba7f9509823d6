package httpx

import (
	"net/http"
	"strconv"
)

// QueryInt reads an integer query parameter. An absent or empty value
// yields def; ok is false when the value is present but not an integer.
func QueryInt(r *http.Request, key string, def int) (value int, ok bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
