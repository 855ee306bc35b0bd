package api

import (
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/foodgram-project/backend/internal/types"
)

const defaultPageSize = 6

// pageParams reads the page/limit query parameters.
func pageParams(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if limit < 1 {
		limit = defaultPageSize
	}
	return page, limit, (page - 1) * limit
}

// paginate wraps results in the list envelope with next/previous links built
// from the request URL.
func paginate(c *gin.Context, count int64, page, limit int, results interface{}) types.Page {
	p := types.Page{Count: count, Results: results}

	if int64(page*limit) < count {
		p.Next = pageLink(c.Request.URL, page+1)
	}
	if page > 1 {
		p.Previous = pageLink(c.Request.URL, page-1)
	}
	return p
}

func pageLink(u *url.URL, page int) *string {
	link := *u
	q := link.Query()
	q.Set("page", strconv.Itoa(page))
	link.RawQuery = q.Encode()
	s := link.String()
	return &s
}
