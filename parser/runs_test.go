package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeRunListSingleRun(t *testing.T) {
	// 48 clusters starting at cluster 16.
	runs, err := DecodeRunList([]byte{0x11, 0x30, 0x10, 0x00})
	assert.NoError(t, err)
	assert.Equal(t, []Run{
		{RelativeOffset: 16, Length: 48},
	}, runs)

	clusters, sparse := MaterializeClusters(runs)
	assert.Equal(t, int64(0), sparse)
	assert.Equal(t, 48, len(clusters))
	assert.Equal(t, uint64(16), clusters[0])
	assert.Equal(t, uint64(63), clusters[47])
}

func TestDecodeRunListNegativeDelta(t *testing.T) {
	// The second run starts 5 clusters before the first run's start,
	// not before its end.
	runs, err := DecodeRunList([]byte{
		0x11, 0x30, 0x10,
		0x11, 0x02, 0xFB,
		0x00})
	assert.NoError(t, err)
	assert.Equal(t, []Run{
		{RelativeOffset: 16, Length: 48},
		{RelativeOffset: -5, Length: 2},
	}, runs)

	clusters, _ := MaterializeClusters(runs)
	assert.Equal(t, 50, len(clusters))
	assert.Equal(t, uint64(11), clusters[48])
	assert.Equal(t, uint64(12), clusters[49])
}

func TestDecodeRunListWideFields(t *testing.T) {
	// Two byte length, two byte offset.
	runs, err := DecodeRunList([]byte{
		0x22, 0x00, 0x01, 0x00, 0x02, 0x00})
	assert.NoError(t, err)
	assert.Equal(t, []Run{
		{RelativeOffset: 0x200, Length: 0x100},
	}, runs)
}

func TestDecodeRunListSparseHole(t *testing.T) {
	// An 8 cluster hole between two real runs. The hole contributes no
	// clusters and does not move the position the next delta is
	// relative to.
	runs, err := DecodeRunList([]byte{
		0x11, 0x30, 0x10,
		0x01, 0x08,
		0x11, 0x05, 0x10,
		0x00})
	assert.NoError(t, err)
	assert.Equal(t, []Run{
		{RelativeOffset: 16, Length: 48},
		{RelativeOffset: 0, Length: 8, IsSparse: true},
		{RelativeOffset: 16, Length: 5},
	}, runs)

	clusters, sparse := MaterializeClusters(runs)
	assert.Equal(t, int64(8), sparse)
	assert.Equal(t, 53, len(clusters))
	assert.Equal(t, uint64(32), clusters[48])
	assert.Equal(t, uint64(36), clusters[52])
}

func TestDecodeRunListEmpty(t *testing.T) {
	runs, err := DecodeRunList([]byte{0x00})
	assert.NoError(t, err)
	assert.Equal(t, 0, len(runs))

	runs, err = DecodeRunList(nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(runs))
}

func TestDecodeRunListMalformed(t *testing.T) {
	for _, testcase := range [][]byte{
		// A zero width length can never advance the stream.
		{0x10, 0x05},
		// Header promises more bytes than the buffer holds.
		{0x21, 0x05},
		{0x11, 0x30},
	} {
		_, err := DecodeRunList(testcase)
		assert.Equal(t, RunListError, err, "input %#v", testcase)
	}
}
