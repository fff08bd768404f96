// Package navigation computes the visible subset of navigation entries for a
// role set. It holds no state; re-derive whenever the session changes.
package navigation

import "github.com/sharestay/sharestay-client/internal/core/domain"

// VisibleLinks filters links for the given role set. A link with no required
// roles is visible to everyone, anonymous included; otherwise it is visible
// only when the role sets intersect.
func VisibleLinks(links []domain.NavLink, roles []domain.Role) []domain.NavLink {
	out := make([]domain.NavLink, 0, len(links))
	for _, link := range links {
		if len(link.RequireRoles) == 0 || domain.RolesIntersect(roles, link.RequireRoles) {
			out = append(out, link)
		}
	}
	return out
}

// ForSession is a convenience over VisibleLinks using the snapshot's
// canonical role set.
func ForSession(links []domain.NavLink, snap domain.SessionSnapshot) []domain.NavLink {
	return VisibleLinks(links, snap.Roles())
}
