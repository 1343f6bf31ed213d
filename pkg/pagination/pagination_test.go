package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	normalized := Params{}.Normalize()
	assert.Equal(t, 1, normalized.Page)
	assert.Equal(t, DefaultLimit, normalized.Limit)

	normalized = Params{Page: -3, Limit: 5000}.Normalize()
	assert.Equal(t, 1, normalized.Page)
	assert.Equal(t, MaxLimit, normalized.Limit)

	normalized = Params{Page: 4, Limit: 10}.Normalize()
	assert.Equal(t, 4, normalized.Page)
	assert.Equal(t, 10, normalized.Limit)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 30, Params{Page: 4, Limit: 10}.Offset())
	assert.Equal(t, 0, Params{}.Offset())
}

func TestBuildPage(t *testing.T) {
	page := BuildPage(Params{Page: 2, Limit: 10}, 35)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, int64(35), page.TotalItems)
	assert.Equal(t, 4, page.TotalPages)

	page = BuildPage(Params{}, 0)
	assert.Equal(t, 1, page.TotalPages)
}
