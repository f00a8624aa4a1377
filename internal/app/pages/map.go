package pages

import (
	"github.com/jeonnam-stay/jeonnam-stay/internal/app/models"
)

// dayPalette colour-codes map markers by day index, wrapping after five days.
var dayPalette = []string{"#2563eb", "#10b981", "#f59e0b", "#ef4444", "#8b5cf6"}

// fallbackCenter is the Jeonnam regional centre used when a route carries no
// plottable points; fallbackZoom pairs with it.
var fallbackCenter = [2]float64{34.8161, 126.4629}

const fallbackZoom = 9

type MapPoint struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type MapDay struct {
	Day    int        `json:"day"`
	Color  string     `json:"color"`
	Points []MapPoint `json:"points"`
}

// MapData is the payload embedded in the result page and consumed by the
// Leaflet glue script. Same-day points are joined by an ordered path; the
// initial view fits the padded bounding box of all points, or falls back to
// the regional centre when there are none.
type MapData struct {
	Days           []MapDay   `json:"days"`
	FallbackCenter [2]float64 `json:"fallbackCenter"`
	FallbackZoom   int        `json:"fallbackZoom"`
}

// DayColor returns the palette colour for a zero-based day index.
func DayColor(dayIndex int) string {
	return dayPalette[dayIndex%len(dayPalette)]
}

// BuildMapData projects a route into the map payload without mutating it.
func BuildMapData(route *models.RecommendedRoute) MapData {
	data := MapData{
		Days:           make([]MapDay, 0, len(route.Days)),
		FallbackCenter: fallbackCenter,
		FallbackZoom:   fallbackZoom,
	}
	for i, day := range route.Days {
		md := MapDay{
			Day:    day.Day,
			Color:  DayColor(i),
			Points: make([]MapPoint, 0, len(day.Spots)),
		}
		for _, spot := range day.Spots {
			md.Points = append(md.Points, MapPoint{Name: spot.Name, Lat: spot.Lat, Lng: spot.Lng})
		}
		data.Days = append(data.Days, md)
	}
	return data
}
