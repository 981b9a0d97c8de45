package web

// Brand is shown at the left of the navigation bar and links home.
const Brand = "RugGuard"

// NavLink is one entry of the navigation bar.
type NavLink struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

var navigation = []NavLink{
	{Label: "Pools", Path: "/"},
	{Label: "Liquidity", Path: "/liquidity"},
	{Label: "Swap", Path: "/swap"},
	{Label: "Earn", Path: "/earn"},
	{Label: "TX Queue", Path: "/pool-tx-queue"},
	{Label: "Analytics", Path: "/analytics"},
	{Label: "About", Path: "/about"},
}

// Navigation returns the declared routes in display order. The result is a
// copy.
func Navigation() []NavLink {
	out := make([]NavLink, len(navigation))
	copy(out, navigation)
	return out
}

// IsDeclaredRoute reports whether path is one of the navigation routes.
func IsDeclaredRoute(path string) bool {
	for _, l := range navigation {
		if l.Path == path {
			return true
		}
	}
	return false
}
