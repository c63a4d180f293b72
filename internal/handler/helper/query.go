package helper

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// PageParams reads page and page_size from the query string, falling back to 1 and 10
func PageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}

// OptionalUintQuery reads a positive integer query parameter; an absent parameter yields nil
func OptionalUintQuery(c *gin.Context, name string) (*uint, error) {
	raw, present := c.GetQuery(name)
	if !present || raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		return nil, strconv.ErrSyntax
	}
	v := uint(n)
	return &v, nil
}
