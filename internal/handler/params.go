package handler

import (
	"net/http"
	"strconv"
)

// pageParams reads page/pageSize from the query string. Absent or
// non-numeric values fall back to 0, which the service clamps to its
// defaults — a garbage page number must never become a garbage offset.
func pageParams(r *http.Request) (page, pageSize int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ = strconv.Atoi(r.URL.Query().Get("pageSize"))
	return page, pageSize
}
