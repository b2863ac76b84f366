package service

import (
	"time"
)

var fixedNow = time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)

func testClock() Clock {
	return Clock{Now: func() time.Time { return fixedNow }, Location: time.UTC}
}

func strPtr(s string) *string { return &s }
