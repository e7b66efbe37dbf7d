package planner

import (
	"sync"
	"time"
)

// Line emphasis applied by the map: the selected route is drawn thick and
// fully opaque, the rest thin and faded.
const (
	selectedLineWeight    = 7
	selectedLineOpacity   = 1.0
	unselectedLineWeight  = 4
	unselectedLineOpacity = 0.5
)

// StyledTag is a tag badge ready for rendering. Label may be localized;
// the style is always looked up by the canonical tag name.
type StyledTag struct {
	Label      string `json:"label"`
	Background string `json:"background"`
	Foreground string `json:"foreground"`
}

// RouteView is one candidate route as the UI renders it, in response order.
type RouteView struct {
	RouteID         string           `json:"route_id"`
	Rank            int              `json:"rank"`
	Best            bool             `json:"best"`
	DistanceKm      string           `json:"distance_km"`
	DurationDisplay string           `json:"duration_display,omitempty"`
	QualityScore    float64          `json:"quality_score"`
	QualityDisplay  string           `json:"quality_display"`
	QualityBand     QualityBand      `json:"quality_band"`
	QualityColor    string           `json:"quality_color"`
	Tags            []StyledTag      `json:"tags"`
	Color           string           `json:"color"`
	LineWeight      int              `json:"line_weight"`
	LineOpacity     float64          `json:"line_opacity"`
	Positions       []LatLng         `json:"positions,omitempty"`
	Selected        bool             `json:"selected"`
	WarningCount    int              `json:"warning_count"`
	Warnings        []SegmentWarning `json:"warnings,omitempty"`
}

// ViewModel is the complete render state of one planner page.
type ViewModel struct {
	SessionID       string        `json:"session_id"`
	Routes          []RouteView   `json:"routes"`
	SelectedRouteID string        `json:"selected_route_id,omitempty"`
	Weather         *WeatherPanel `json:"weather,omitempty"`
	RouteSource     string        `json:"route_source,omitempty"`
}

// Session owns the display state of one planner page: the last search result,
// the route selection, and a generation counter that supersedes in-flight
// searches. Nothing here survives beyond the in-memory session; a new search
// replaces the state wholesale.
type Session struct {
	id string

	mu         sync.Mutex
	generation uint64
	result     *SearchResult
	polylines  map[string][]LatLng
	selection  *Selection
	touchedAt  time.Time
}

// NewSession creates an empty session in the no-selection state.
func NewSession(id string) *Session {
	return &Session{
		id:        id,
		selection: NewSelection(),
		touchedAt: time.Now(),
	}
}

// ID returns the session's identifier.
func (s *Session) ID() string { return s.id }

// Touch refreshes the session's idle timer.
func (s *Session) Touch() {
	s.mu.Lock()
	s.touchedAt = time.Now()
	s.mu.Unlock()
}

// IdleSince returns when the session was last used.
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchedAt
}

// BeginSearch clears the current result and selection, bumps the search
// generation, and returns the token the completing response must present.
// A response carrying a stale token is dropped.
func (s *Session) BeginSearch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.result = nil
	s.polylines = nil
	s.selection.SearchCleared()
	s.touchedAt = time.Now()
	return s.generation
}

// CompleteSearch installs a search result if the generation token is still
// current. Polylines are normalized exactly once here, off the raw payload.
// Reports whether the result was applied; a superseded response is ignored.
func (s *Session) CompleteSearch(gen uint64, result *SearchResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation || result == nil {
		return false
	}
	s.result = result
	s.polylines = make(map[string][]LatLng, len(result.Routes))
	for _, r := range result.Routes {
		s.polylines[r.RouteID] = NormalizeForMap(r)
	}
	s.selection.SearchCompleted(result.Routes)
	s.touchedAt = time.Now()
	return true
}

// ClearResults drops the result and selection and invalidates any in-flight
// search for this session.
func (s *Session) ClearResults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.result = nil
	s.polylines = nil
	s.selection.SearchCleared()
	s.touchedAt = time.Now()
}

// SelectRoute makes the given route the active one. Ids outside the current
// route set are ignored. Route contents are never touched.
func (s *Session) SelectRoute(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchedAt = time.Now()
	return s.selection.Click(id)
}

// IsSelected reports whether id is the session's active route.
func (s *Session) IsSelected(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.IsSelected(id)
}

// View renders the session into its display model. Routes stay in response
// order; warning markers are attached in full only to the selected route,
// the rest carry just a count.
func (s *Session) View() *ViewModel {
	s.mu.Lock()
	defer s.mu.Unlock()

	vm := &ViewModel{SessionID: s.id, Routes: []RouteView{}}
	if s.result == nil {
		return vm
	}

	if id, ok := s.selection.RouteID(); ok {
		vm.SelectedRouteID = id
	}
	vm.Weather = BindWeather(s.result.Weather, s.result.CyclingRecommendation)
	vm.RouteSource = RouteSourceLabel(s.result.RouteSource)

	for i, r := range s.result.Routes {
		selected := s.selection.IsSelected(r.RouteID)
		rv := RouteView{
			RouteID:         r.RouteID,
			Rank:            r.Rank,
			Best:            r.Rank == 1,
			DistanceKm:      FormatKm(r.TotalDistance),
			DurationDisplay: r.DurationDisplay,
			QualityScore:    r.RoadQualityScore,
			QualityDisplay:  FormatScore(r.RoadQualityScore),
			QualityBand:     BandForScore(r.RoadQualityScore),
			Color:           ColorFor(i, RoutePalette),
			LineWeight:      unselectedLineWeight,
			LineOpacity:     unselectedLineOpacity,
			Positions:       s.polylines[r.RouteID],
			Selected:        selected,
			WarningCount:    len(r.SegmentsWarning),
			Tags:            styledTags(r),
		}
		rv.QualityColor = rv.QualityBand.Color()
		if selected {
			rv.LineWeight = selectedLineWeight
			rv.LineOpacity = selectedLineOpacity
			rv.Warnings = r.Warnings()
		}
		vm.Routes = append(vm.Routes, rv)
	}
	return vm
}

func styledTags(r ScoredRoute) []StyledTag {
	labels := r.Tags
	if len(r.TagsLocalized) == len(r.Tags) && len(r.TagsLocalized) > 0 {
		labels = r.TagsLocalized
	}
	tags := make([]StyledTag, 0, len(r.Tags))
	for i, tag := range r.Tags {
		style := StyleForTag(tag)
		tags = append(tags, StyledTag{
			Label:      labels[i],
			Background: style.Background,
			Foreground: style.Foreground,
		})
	}
	return tags
}
