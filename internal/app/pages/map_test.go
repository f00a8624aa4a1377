package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeonnam-stay/jeonnam-stay/internal/app/models"
)

func TestDayColorWrapsPalette(t *testing.T) {
	assert.Equal(t, DayColor(0), DayColor(5))
	assert.Equal(t, DayColor(1), DayColor(6))
	assert.NotEqual(t, DayColor(0), DayColor(1))
}

func TestBuildMapDataPreservesOrder(t *testing.T) {
	route := &models.RecommendedRoute{
		Days: []models.DailyPlan{
			{Day: 1, Spots: []models.Spot{
				{Name: "A", Lat: 34.1, Lng: 127.1},
				{Name: "B", Lat: 34.2, Lng: 127.2},
			}},
			{Day: 2, Spots: []models.Spot{
				{Name: "C", Lat: 34.3, Lng: 127.3},
			}},
		},
	}

	data := BuildMapData(route)
	require.Len(t, data.Days, 2)
	assert.Equal(t, []MapPoint{
		{Name: "A", Lat: 34.1, Lng: 127.1},
		{Name: "B", Lat: 34.2, Lng: 127.2},
	}, data.Days[0].Points)
	assert.Equal(t, DayColor(0), data.Days[0].Color)
	assert.Equal(t, DayColor(1), data.Days[1].Color)
}

func TestBuildMapDataFallbackCenter(t *testing.T) {
	data := BuildMapData(&models.RecommendedRoute{})
	assert.Empty(t, data.Days)
	assert.Equal(t, fallbackCenter, data.FallbackCenter)
	assert.Equal(t, fallbackZoom, data.FallbackZoom)
}
