// Package schedule classifies muhurta and choghadiya windows as active or
// not relative to a point in time. Containment is evaluated in
// clock-minutes-of-day space so windows that cross midnight work without
// calendar arithmetic.
package schedule

import (
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/shreekundli/panchang-cli/pkg/shreeng"
)

// ParseClockMinutes parses a 12-hour display time ("07:05 AM") into minutes
// since midnight (0-1439). 12 AM maps to hour 0 and 12 PM to hour 12.
func ParseClockMinutes(s string) (int, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 2 {
		return 0, eris.Errorf("schedule: invalid clock time %q", s)
	}

	period := strings.ToUpper(fields[1])
	if period != "AM" && period != "PM" {
		return 0, eris.Errorf("schedule: invalid period in %q", s)
	}

	hm := strings.SplitN(fields[0], ":", 2)
	if len(hm) != 2 {
		return 0, eris.Errorf("schedule: invalid clock time %q", s)
	}
	hours, err := strconv.Atoi(hm[0])
	if err != nil || hours < 1 || hours > 12 {
		return 0, eris.Errorf("schedule: invalid hour in %q", s)
	}
	minutes, err := strconv.Atoi(hm[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, eris.Errorf("schedule: invalid minute in %q", s)
	}

	if period == "PM" && hours != 12 {
		hours += 12
	}
	if period == "AM" && hours == 12 {
		hours = 0
	}
	return hours*60 + minutes, nil
}

// Contains reports whether now falls inside [start, end] in minutes-of-day
// space. When start > end the window crosses midnight and containment
// becomes "now >= start OR now <= end". Both boundaries are inside.
func Contains(now, start, end int) bool {
	if start > end {
		return now >= start || now <= end
	}
	return now >= start && now <= end
}

// Active reports whether the window holding the given display and ISO times
// contains now. When both ISO instants parse and are ordered, the comparison
// uses absolute time; otherwise it falls back to the display strings in
// clock-minute space, with now interpreted in its own location. Windows with
// unparseable times are never active.
func Active(start, end, startISO, endISO string, now time.Time) bool {
	if startT, err := time.Parse(time.RFC3339, startISO); err == nil {
		if endT, err := time.Parse(time.RFC3339, endISO); err == nil && !endT.Before(startT) {
			return !now.Before(startT) && !now.After(endT)
		}
	}

	startMin, err := ParseClockMinutes(start)
	if err != nil {
		return false
	}
	endMin, err := ParseClockMinutes(end)
	if err != nil {
		return false
	}
	return Contains(now.Hour()*60+now.Minute(), startMin, endMin)
}

// WindowActive classifies a single engine window.
func WindowActive(w shreeng.Window, now time.Time) bool {
	return Active(w.Start, w.End, w.StartISO, w.EndISO, now)
}

// AnnotateMuhurta recomputes IsActive on every muhurta window for the given
// now. The engine flags windows relative to the requested datetime, which is
// not necessarily the render time.
func AnnotateMuhurta(m *shreeng.MuhurtaResponse, now time.Time) {
	if m == nil {
		return
	}
	m.RahuKaal.IsActive = WindowActive(m.RahuKaal, now)
	m.Yamaganda.IsActive = WindowActive(m.Yamaganda, now)
	m.GulikaKaal.IsActive = WindowActive(m.GulikaKaal, now)
	if m.Abhijit != nil {
		m.Abhijit.IsActive = WindowActive(*m.Abhijit, now)
	}
	if m.Brahma != nil {
		m.Brahma.IsActive = WindowActive(*m.Brahma, now)
	}
}

// AnnotateChoghadiya recomputes IsActive on every day and night period.
func AnnotateChoghadiya(c *shreeng.ChoghadiyaResponse, now time.Time) {
	if c == nil {
		return
	}
	for i := range c.Day {
		p := &c.Day[i]
		p.IsActive = Active(p.Start, p.End, p.StartISO, p.EndISO, now)
	}
	for i := range c.Night {
		p := &c.Night[i]
		p.IsActive = Active(p.Start, p.End, p.StartISO, p.EndISO, now)
	}
}
