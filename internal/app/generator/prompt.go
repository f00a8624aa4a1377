package generator

import (
	"fmt"
	"strings"

	"github.com/jeonnam-stay/jeonnam-stay/internal/app/models"
)

// CandidateCities is the fixed set the model must pick exactly one city from.
var CandidateCities = []string{"Yeosu", "Suncheon", "Mokpo", "Damyang"}

const systemInstruction = `You are a travel expert for Jeollanam-do, South Korea.
Given the user's travel style and trip duration, select exactly ONE city from
{%s} that fits them best and build a daily itinerary for it.
The response MUST be a single JSON object and MUST include:
1. An estimated travel time between consecutive spots (e.g. "10 min by car")
   for every spot after the first of each day.
2. Exactly one alternative spot (alternativeSpot) per day matching that day's theme.
3. A Naver map search link (naverLink) for every spot.
Keep the output fast and concise, core information only.`

func buildSystemInstruction() string {
	return fmt.Sprintf(systemInstruction, strings.Join(CandidateCities, ", "))
}

func buildPrompt(prefs models.UserPreferences) string {
	return fmt.Sprintf(`Style: %s, Duration: %d days, Budget: %s.
Pick the best Jeonnam city. Generate a daily itinerary with travel times and 1 alternative spot per day.
Ensure coordinates (lat, lng) are accurate for the selected city.`,
		prefs.Style, prefs.Duration, prefs.Budget)
}
