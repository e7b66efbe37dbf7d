package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func routeFixture(ids ...string) []ScoredRoute {
	routes := make([]ScoredRoute, len(ids))
	for i, id := range ids {
		routes[i] = ScoredRoute{RouteID: id, Rank: i + 1}
	}
	return routes
}

func TestSelectionDefaultsToFirstRoute(t *testing.T) {
	s := NewSelection()
	_, ok := s.RouteID()
	assert.False(t, ok, "fresh selection starts empty")

	s.SearchCompleted(routeFixture("r1", "r2", "r3"))

	assert.True(t, s.IsSelected("r1"))
	assert.False(t, s.IsSelected("r2"))
	assert.False(t, s.IsSelected("r3"))
}

func TestSelectionEmptyResult(t *testing.T) {
	s := NewSelection()
	s.SearchCompleted(nil)

	_, ok := s.RouteID()
	assert.False(t, ok)
	assert.False(t, s.IsSelected(""))
}

func TestSelectionClick(t *testing.T) {
	s := NewSelection()
	s.SearchCompleted(routeFixture("r1", "r2", "r3"))

	assert.True(t, s.Click("r2"))
	assert.True(t, s.IsSelected("r2"))
	assert.False(t, s.IsSelected("r1"))

	// Unknown ids are a harmless no-op.
	assert.False(t, s.Click("r9"))
	assert.True(t, s.IsSelected("r2"))
}

func TestSelectionClearedAfterClick(t *testing.T) {
	s := NewSelection()
	s.SearchCompleted(routeFixture("r1", "r2", "r3"))
	s.Click("r2")

	s.SearchCleared()

	_, ok := s.RouteID()
	assert.False(t, ok)
	assert.False(t, s.IsSelected("r2"))
	assert.False(t, s.Click("r2"), "cleared selection has no members to click")
}

func TestSelectionReplacedBySecondSearch(t *testing.T) {
	s := NewSelection()
	s.SearchCompleted(routeFixture("r1", "r2"))
	s.Click("r2")

	s.SearchCompleted(routeFixture("a", "b"))

	assert.True(t, s.IsSelected("a"))
	assert.False(t, s.IsSelected("r2"))
	assert.False(t, s.Click("r2"), "old route set is gone")
}
