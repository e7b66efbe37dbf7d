package planner

import (
	"encoding/json"
)

// Preference selects the backend's scoring profile for a route search.
type Preference string

const (
	PreferenceSafetyFirst Preference = "safety_first"
	PreferenceShortest    Preference = "shortest"
	PreferenceBalanced    Preference = "balanced"
)

// Coordinate is a caller-supplied geographic point. Beyond being numeric
// it is not validated; the backend owns coordinate semantics.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// SearchRequest is the body sent to the backend's POST /path/search.
type SearchRequest struct {
	Origin      Coordinate `json:"origin"`
	Destination Coordinate `json:"destination"`
	Preferences Preference `json:"preferences" validate:"required,oneof=safety_first shortest balanced"`
}

// SegmentWarning marks a hazard (pothole, road work, bad surface) on a route.
type SegmentWarning struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Type string  `json:"type"`
}

// ScoredRoute is one candidate path from a search response.
//
// Rank is assigned by the backend's combined score (distance plus hazard
// penalties), 1 = best; ranks are a permutation of 1..n within a response.
// RoadQualityScore is a separate quality-only figure in [0,100] and does not
// determine rank. Both are treated as opaque here: the view layer never
// re-sorts or recomputes them.
//
// GeometryGeoJSON is kept raw so a malformed geometry only costs that route
// its polyline instead of failing the whole response decode. Geometry is the
// encoded-polyline fallback some backend builds send alongside the GeoJSON.
type ScoredRoute struct {
	RouteID          string           `json:"route_id" validate:"required"`
	Rank             int              `json:"rank" validate:"gte=1"`
	TotalDistance    float64          `json:"total_distance" validate:"gte=0"`
	DurationS        float64          `json:"duration_s,omitempty"`
	DurationDisplay  string           `json:"duration_display,omitempty"`
	RoadQualityScore float64          `json:"road_quality_score" validate:"gte=0,lte=100"`
	Tags             []string         `json:"tags"`
	TagsLocalized    []string         `json:"tags_localized,omitempty"`
	Geometry         string           `json:"geometry,omitempty"`
	GeometryGeoJSON  json.RawMessage  `json:"geometry_geojson,omitempty"`
	SegmentsWarning  []SegmentWarning `json:"segments_warning"`

	SegmentsWarningLocalized []SegmentWarning `json:"segments_warning_localized,omitempty"`
}

// Warnings returns the localized hazard list when the backend sent one,
// falling back to the canonical list.
func (r ScoredRoute) Warnings() []SegmentWarning {
	if len(r.SegmentsWarningLocalized) == len(r.SegmentsWarning) && len(r.SegmentsWarningLocalized) > 0 {
		return r.SegmentsWarningLocalized
	}
	return r.SegmentsWarning
}

// Weather is the backend-computed weather block attached to a search
// response. IsCyclingFriendly is opaque; it is never recomputed client-side.
type Weather struct {
	Condition          string  `json:"condition"`
	ConditionLocalized string  `json:"condition_localized,omitempty"`
	TemperatureC       float64 `json:"temperature_c"`
	WindSpeedKmh       float64 `json:"wind_speed_kmh"`
	RainChancePercent  float64 `json:"rain_chance_percent"`
	IsCyclingFriendly  bool    `json:"is_cycling_friendly"`
}

// SearchResult is the full payload of one POST /path/search response.
// RouteSource is an opaque provenance tag ("osrm" vs. fallback geometry)
// with no semantics beyond display.
type SearchResult struct {
	Routes                []ScoredRoute `json:"routes" validate:"dive"`
	Weather               *Weather      `json:"weather,omitempty"`
	CyclingRecommendation string        `json:"cycling_recommendation,omitempty"`
	RouteSource           string        `json:"route_source,omitempty"`
}
