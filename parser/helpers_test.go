package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Ticks for a calendar instant, the inverse of the decoder.
func encodeTicks(seconds int64, fraction int64) uint64 {
	return uint64((seconds+11644473600)*10000000 + fraction)
}

func TestWinFileTimeUnixEpoch(t *testing.T) {
	ts := WinFileTime{Ticks: 116444736000000000}
	assert.Equal(t, int64(0), ts.Unix())
	assert.Equal(t, int64(0), ts.Fraction())
	assert.Equal(t,
		time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), ts.Time())
	assert.Equal(t, "1970-01-01 00:00:00.000000000 (UTC)", ts.String())
}

func TestWinFileTimeZeroFallsBackToCalendarEpoch(t *testing.T) {
	ts := WinFileTime{Ticks: 0}
	assert.Equal(t, int64(-11644473600), ts.Unix())
	assert.Equal(t, int64(0), ts.Fraction())
	assert.Equal(t,
		time.Date(1601, 1, 1, 0, 0, 0, 0, time.UTC), ts.Time())
}

func TestWinFileTimeRoundTrip(t *testing.T) {
	for _, testcase := range []struct {
		seconds  int64
		fraction int64
	}{
		{0, 0},
		{86400, 1234567},
		{1577836800, 9999999},
	} {
		ts := WinFileTime{Ticks: encodeTicks(testcase.seconds, testcase.fraction)}
		assert.Equal(t, testcase.seconds, ts.Unix())
		assert.Equal(t, testcase.fraction, ts.Fraction())
	}
}
