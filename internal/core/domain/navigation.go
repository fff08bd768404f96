package domain

// NavLink describes one navigation entry. A link with an empty RequireRoles
// set is visible to every session state, including anonymous; otherwise it is
// visible only when the current role set intersects RequireRoles.
type NavLink struct {
	Label        string
	Href         string
	RequireRoles []Role
}

// DefaultNavLinks is the product navigation, in display order.
var DefaultNavLinks = []NavLink{
	{Label: "Find Rooms", Href: "/rooms"},
	{Label: "Safety Map", Href: "/safety-map"},
	{Label: "Guide", Href: "/guide"},
	{Label: "List a Room", Href: "/list-room", RequireRoles: []Role{RoleHost, RoleAdmin}},
	{Label: "Admin", Href: "/admin", RequireRoles: []Role{RoleAdmin}},
}
