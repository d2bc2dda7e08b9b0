package calendar

import (
	"net/url"
	"strings"
	"time"
)

const (
	renderURL   = "https://calendar.google.com/calendar/render"
	stampLayout = "20060102T150405Z"
)

// Stamp formats t as a UTC calendar timestamp, e.g. 20261016T140000Z.
func Stamp(t time.Time) string { return t.UTC().Format(stampLayout) }

// URL is the calendar "create event" link for e. Parameter order and the raw
// "/" between the start and end stamps match what the calendar expects.
func URL(e Event) string {
	var sb strings.Builder
	sb.WriteString(renderURL)
	sb.WriteString("?action=TEMPLATE")
	sb.WriteString("&text=" + escape(e.Title))
	sb.WriteString("&dates=" + Stamp(e.Start) + "/" + Stamp(e.End))
	sb.WriteString("&details=" + escape(e.Body))
	sb.WriteString("&add=" + escape(strings.Join(e.Attendees, ",")))
	return sb.String()
}

// escape percent-encodes s for a query component, spaces as %20.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
