package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paginationContext(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/documents?"+query, nil)
	return c
}

func TestParsePagination(t *testing.T) {
	p := ParsePagination(paginationContext(""))
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 0, p.Offset)

	p = ParsePagination(paginationContext("page=3&limit=50"))
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 50, p.Limit)
	assert.Equal(t, 100, p.Offset)

	p = ParsePagination(paginationContext("page=0&limit=-5"))
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.Limit)

	p = ParsePagination(paginationContext("limit=9999"))
	assert.Equal(t, 100, p.Limit)

	p = ParsePagination(paginationContext("page=abc&limit=xyz"))
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.Limit)
}
