// Package schedule computes metal rookie notification times and runs the
// notification loop.
//
// Every time computation happens in JST. Timestamps coming in from the
// runtime are converted first, so the container's own timezone (usually
// UTC) never shifts a boundary. Boundaries are anchor + n*interval; each
// boundary has a pre-notification a configurable number of minutes ahead
// of it.
package schedule

import (
	"fmt"
	"time"
)

// JST is the fixed UTC+9 zone all schedule math uses.
var JST = time.FixedZone("JST", 9*60*60)

// Anchor is the fixed origin of the boundary grid, in JST.
var Anchor = time.Date(2025, time.October, 16, 12, 0, 0, 0, JST)

// Interval is the spacing between boundaries.
const Interval = 2*time.Hour + 30*time.Minute

// EventKind distinguishes the advance warning from the boundary itself.
type EventKind string

const (
	// KindPre is the advance notification, lead minutes before a boundary.
	KindPre EventKind = "pre"

	// KindMain is the notification at the boundary.
	KindMain EventKind = "main"
)

// Event is the next notification the scheduler will fire.
type Event struct {
	// Time is when the notification fires, in JST.
	Time time.Time

	// Kind is pre or main.
	Kind EventKind

	// Boundary is the metal rookie boundary this event belongs to.
	Boundary time.Time

	// Lead is the pre-notification lead in minutes used for the computation.
	Lead int
}

// ToJST converts a timestamp to JST.
func ToJST(t time.Time) time.Time {
	return t.In(JST)
}

// NowJST returns the current time in JST.
func NowJST() time.Time {
	return time.Now().In(JST)
}

// NextBoundary returns the first boundary at or after now on the grid
// anchor + n*interval. Now at or before the anchor yields the anchor;
// now exactly on a boundary yields now itself.
func NextBoundary(now, anchor time.Time, interval time.Duration) time.Time {
	now = ToJST(now)
	anchor = ToJST(anchor)

	if !now.After(anchor) {
		return anchor
	}
	elapsed := now.Sub(anchor)
	remainder := elapsed % interval
	if remainder == 0 {
		return now
	}
	return now.Add(interval - remainder)
}

// NextEvent returns the next notification after now: the pre event when
// now is still ahead of (or exactly on) the pre time, otherwise the main
// event at the boundary. Lead is in minutes.
func NextEvent(now, anchor time.Time, interval time.Duration, lead int) Event {
	now = ToJST(now)

	boundary := NextBoundary(now, anchor, interval)
	preTime := boundary.Add(-time.Duration(lead) * time.Minute)

	switch {
	case now.Before(preTime):
		return Event{Time: preTime, Kind: KindPre, Boundary: boundary, Lead: lead}
	case now.Equal(preTime):
		return Event{Time: now, Kind: KindPre, Boundary: boundary, Lead: lead}
	case now.Before(boundary):
		return Event{Time: boundary, Kind: KindMain, Boundary: boundary, Lead: lead}
	}

	// Past the boundary: recompute against the next one.
	next := NextBoundary(now, anchor, interval)
	pre2 := next.Add(-time.Duration(lead) * time.Minute)
	if !now.After(pre2) {
		return Event{Time: pre2, Kind: KindPre, Boundary: next, Lead: lead}
	}
	return Event{Time: next, Kind: KindMain, Boundary: next, Lead: lead}
}

// HumanDelta formats a duration as Japanese text: n時間m分s秒, m分s秒, or
// s秒. Negative durations clamp to 0秒.
func HumanDelta(d time.Duration) string {
	secs := int(d.Seconds())
	if secs < 0 {
		secs = 0
	}
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%d時間%d分%d秒", h, m, s)
	case m > 0:
		return fmt.Sprintf("%d分%d秒", m, s)
	default:
		return fmt.Sprintf("%d秒", s)
	}
}
