package dtos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	page, limit := NormalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	page, limit = NormalizePage(-3, 1000)
	assert.Equal(t, 1, page)
	assert.Equal(t, MaxLimit, limit)

	page, limit = NormalizePage(4, 25)
	assert.Equal(t, 4, page)
	assert.Equal(t, 25, limit)
}

func TestNewPageMetaCeil(t *testing.T) {
	assert.Equal(t, 0, NewPageMeta(1, 10, 0).Pages)
	assert.Equal(t, 1, NewPageMeta(1, 10, 10).Pages)
	assert.Equal(t, 2, NewPageMeta(1, 10, 11).Pages)
	assert.Equal(t, 5, NewPageMeta(1, 10, 41).Pages)
}
