package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeItemIDs(t *testing.T) {
	assert.Equal(t, "", encodeItemIDs(nil))
	assert.Equal(t, "7", encodeItemIDs([]int64{7}))
	assert.Equal(t, "3,1,2", encodeItemIDs([]int64{3, 1, 2}))
}

func TestDecodeItemIDs(t *testing.T) {
	assert.Nil(t, decodeItemIDs(""))
	assert.Equal(t, []int64{3, 1, 2}, decodeItemIDs("3,1,2"))
}

func TestDecodeItemIDsSkipsMalformedSegments(t *testing.T) {
	assert.Equal(t, []int64{4, 9}, decodeItemIDs("4,,abc, 9 "))
}

func TestCodecRoundTripPreservesOrder(t *testing.T) {
	ids := []int64{10, 2, 10, 5}
	assert.Equal(t, ids, decodeItemIDs(encodeItemIDs(ids)))
}
