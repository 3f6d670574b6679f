package parser

import (
	"fmt"
	"time"
)

// Ticks between 1601-01-01 and the Unix epoch.
const unixEpochDelta = 116444736000000000

// WinFileTime is a timestamp in windows filetime format: 100ns ticks
// since 1601-01-01 UTC. The decoded contract is the numeric
// (epoch seconds, 100ns fraction) pair; rendering is left to String.
type WinFileTime struct {
	Ticks uint64
}

func (self WinFileTime) Unix() int64 {
	return (int64(self.Ticks) - unixEpochDelta) / 10000000
}

// Fraction is the sub second remainder in 100ns units, the 7 digit
// field of istat output.
func (self WinFileTime) Fraction() int64 {
	return int64(self.Ticks % 10000000)
}

// Time resolves the pair to a calendar instant. Ticks of 0 resolve to
// 1601-01-01 itself rather than failing.
func (self WinFileTime) Time() time.Time {
	return time.Unix(self.Unix(), self.Fraction()*100).UTC()
}

func (self WinFileTime) String() string {
	return fmt.Sprintf("%s.%07d00 (UTC)",
		self.Time().Format("2006-01-02 15:04:05"), self.Fraction())
}
