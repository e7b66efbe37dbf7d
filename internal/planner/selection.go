package planner

// Selection tracks which candidate route is active for one search result.
// It has two states: no selection (before the first search and after results
// are cleared) and selected(routeID). Changing selection is a purely local
// operation; it never triggers a network call.
type Selection struct {
	routeID string
	members map[string]struct{}
}

// NewSelection returns a selection in the no-selection state.
func NewSelection() *Selection {
	return &Selection{members: map[string]struct{}{}}
}

// SearchCompleted replaces the route set and defaults the selection to the
// first route in response order, which the backend guarantees is the rank-1
// route. An empty result leaves the selection empty.
func (s *Selection) SearchCompleted(routes []ScoredRoute) {
	s.members = make(map[string]struct{}, len(routes))
	for _, r := range routes {
		s.members[r.RouteID] = struct{}{}
	}
	if len(routes) > 0 {
		s.routeID = routes[0].RouteID
	} else {
		s.routeID = ""
	}
}

// SearchCleared drops the route set and returns to no selection.
func (s *Selection) SearchCleared() {
	s.routeID = ""
	s.members = map[string]struct{}{}
}

// Click selects the given route if it belongs to the current route set and
// reports whether the selection changed state. A well-formed UI only offers
// ids from the current set, but an unknown id must be a harmless no-op.
func (s *Selection) Click(id string) bool {
	if _, ok := s.members[id]; !ok {
		return false
	}
	s.routeID = id
	return true
}

// IsSelected reports whether id is the active route.
func (s *Selection) IsSelected(id string) bool {
	return s.routeID != "" && s.routeID == id
}

// RouteID returns the active route id, if any.
func (s *Selection) RouteID() (string, bool) {
	return s.routeID, s.routeID != ""
}
