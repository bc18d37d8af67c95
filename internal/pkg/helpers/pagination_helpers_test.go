package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	cases := []struct {
		page, size int
		offset     uint64
		limit      int
	}{
		{1, 10, 0, 10},
		{3, 20, 40, 20},
		{0, 10, 0, 10},   // page clamps to 1
		{2, 0, 10, 10},   // size falls back to default
		{2, 500, 10, 10}, // size over the cap falls back to default
	}

	for _, tc := range cases {
		offset, limit := CalculateOffsetLimit(tc.page, tc.size)
		assert.Equal(t, tc.offset, offset)
		assert.Equal(t, tc.limit, limit)
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(45, 2, 10)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 5, info.TotalPages)
	assert.Equal(t, int64(45), info.TotalItems)

	// Empty result set still reports one page
	info = NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, info.TotalPages)

	// Page beyond the end clamps to the last page
	info = NewPaginationInfo(15, 9, 10)
	assert.Equal(t, 2, info.CurrentPage)
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newCtx := func(query string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/?"+query, nil)
		return c
	}

	page, size := ParsePaginationParams(newCtx("page=3&size=25"))
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, size)

	page, size = ParsePaginationParams(newCtx(""))
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, size)

	page, size = ParsePaginationParams(newCtx("page=-1&size=1000"))
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, size)
}
