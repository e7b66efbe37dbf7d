package planner

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	gopolyline "github.com/twpayne/go-polyline"
)

// LatLng is a map position in geographic-library order: index 0 is latitude,
// index 1 is longitude. Note this is the transpose of GeoJSON order.
type LatLng [2]float64

// RoutePalette is the fixed color cycle assigned to candidate routes by their
// position in the response (not by rank). Selection changes line weight and
// opacity, never color identity.
var RoutePalette = []string{"#2563eb", "#16a34a", "#f59e0b", "#ef4444", "#8b5cf6"}

const neutralColor = "#6b7280"

// ColorFor returns the palette color for the route at the given response
// index, cycling through the palette. Same index, same color, always.
// An empty palette or negative index yields a neutral gray.
func ColorFor(index int, palette []string) string {
	if index < 0 || len(palette) == 0 {
		return neutralColor
	}
	return palette[index%len(palette)]
}

// TagStyle is the background/foreground pair a route tag badge renders with.
type TagStyle struct {
	Background string `json:"background"`
	Foreground string `json:"foreground"`
}

var defaultTagStyle = TagStyle{Background: "#f3f4f6", Foreground: "#374151"}

var tagStyles = map[string]TagStyle{
	"Best Surface":    {Background: "#dcfce7", Foreground: "#166534"},
	"Shortest":        {Background: "#dbeafe", Foreground: "#1e40af"},
	"Fastest":         {Background: "#dbeafe", Foreground: "#1e40af"},
	"Slightly Longer": {Background: "#fef3c7", Foreground: "#92400e"},
	"Bumpy":           {Background: "#fee2e2", Foreground: "#991b1b"},
	"Road Work":       {Background: "#fce7f3", Foreground: "#9d174d"},
	"Poor Surface":    {Background: "#fee2e2", Foreground: "#991b1b"},
	"Mixed Surface":   {Background: "#fef3c7", Foreground: "#92400e"},
}

// StyleForTag maps a route tag to its badge style. Total: unknown tags,
// including the empty string, get the neutral default.
func StyleForTag(tag string) TagStyle {
	if s, ok := tagStyles[tag]; ok {
		return s
	}
	return defaultTagStyle
}

// NormalizeForMap turns a route's raw geometry into a map-ready polyline,
// transposing GeoJSON [lon, lat] pairs to [lat, lon]. The input route is not
// mutated and the same raw payload always yields the same polyline. Callers
// must feed raw backend geometry, not an already-transposed result.
//
// A missing or malformed GeoJSON LineString falls back to the encoded
// polyline string when present; if neither decodes there is simply no
// polyline to draw for that route, and nil is returned.
func NormalizeForMap(route ScoredRoute) []LatLng {
	if pts := decodeLineString(route.GeometryGeoJSON); pts != nil {
		return pts
	}
	return decodeEncodedPolyline(route.Geometry)
}

func decodeLineString(raw []byte) []LatLng {
	if len(raw) == 0 {
		return nil
	}
	geom, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return nil
	}
	line, ok := geom.Geometry().(orb.LineString)
	if !ok || len(line) == 0 {
		return nil
	}
	pts := make([]LatLng, len(line))
	for i, p := range line {
		pts[i] = LatLng{p.Lat(), p.Lon()}
	}
	return pts
}

func decodeEncodedPolyline(encoded string) []LatLng {
	if encoded == "" {
		return nil
	}
	coords, _, err := gopolyline.DecodeCoords([]byte(encoded))
	if err != nil || len(coords) == 0 {
		return nil
	}
	// Encoded polylines are already latitude-first.
	pts := make([]LatLng, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			return nil
		}
		pts = append(pts, LatLng{c[0], c[1]})
	}
	return pts
}

// Weather panel themes, keyed solely on the backend's is_cycling_friendly bit.
const (
	WeatherThemeFriendly = "friendly"
	WeatherThemeCaution  = "caution"
)

// WeatherPanel is the display binding for a search response's weather block.
type WeatherPanel struct {
	Theme             string  `json:"theme"`
	Condition         string  `json:"condition"`
	TemperatureC      float64 `json:"temperature_c"`
	WindSpeedKmh      float64 `json:"wind_speed_kmh"`
	RainChancePercent float64 `json:"rain_chance_percent"`
	Recommendation    string  `json:"recommendation,omitempty"`
}

// BindWeather maps a weather payload plus its optional cycling
// recommendation to a two-tone panel. A nil weather renders nothing: the
// recommendation is never shown standalone.
func BindWeather(w *Weather, recommendation string) *WeatherPanel {
	if w == nil {
		return nil
	}
	theme := WeatherThemeCaution
	if w.IsCyclingFriendly {
		theme = WeatherThemeFriendly
	}
	condition := w.Condition
	if w.ConditionLocalized != "" {
		condition = w.ConditionLocalized
	}
	return &WeatherPanel{
		Theme:             theme,
		Condition:         condition,
		TemperatureC:      w.TemperatureC,
		WindSpeedKmh:      w.WindSpeedKmh,
		RainChancePercent: w.RainChancePercent,
		Recommendation:    recommendation,
	}
}

// RouteSourceLabel maps the opaque route_source provenance tag to its display
// label. Empty in, empty out.
func RouteSourceLabel(source string) string {
	switch source {
	case "":
		return ""
	case "osrm":
		return "Using real road data (OSRM)"
	default:
		return "Using fallback geometry"
	}
}
