package timezone

// Zone is a selectable entry of the participant form.
type Zone struct {
	ID    string
	Label string
}

var catalog = []Zone{
	{ID: "America/New_York", Label: "New York (EST/EDT)"},
	{ID: "America/Chicago", Label: "Chicago (CST/CDT)"},
	{ID: "America/Denver", Label: "Denver (MST/MDT)"},
	{ID: "America/Los_Angeles", Label: "Los Angeles (PST/PDT)"},
	{ID: "Europe/London", Label: "London (GMT/BST)"},
	{ID: "Europe/Paris", Label: "Paris (CET/CEST)"},
	{ID: "Europe/Berlin", Label: "Berlin (CET/CEST)"},
	{ID: "Europe/Madrid", Label: "Madrid (CET/CEST)"},
	{ID: "Asia/Tokyo", Label: "Tokyo (JST)"},
	{ID: "Asia/Shanghai", Label: "Shanghai (CST)"},
	{ID: "Asia/Kolkata", Label: "Mumbai (IST)"},
	{ID: "Asia/Bangkok", Label: "Bangkok (ICT)"},
	{ID: "Australia/Sydney", Label: "Sydney (AEST/AEDT)"},
	{ID: "Pacific/Auckland", Label: "Auckland (NZST/NZDT)"},
}

// Catalog returns a copy of the built-in zone list in display order.
func Catalog() []Zone {
	out := make([]Zone, len(catalog))
	copy(out, catalog)
	return out
}

// Label returns the display label for id, or id itself when it is not in the catalog.
func Label(id string) string {
	for _, z := range catalog {
		if z.ID == id {
			return z.Label
		}
	}
	return id
}
