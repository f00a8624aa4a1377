package models

// TravelStyle is one of the six styles offered on the preference form.
type TravelStyle string

const (
	StylePhoto        TravelStyle = "PHOTO"
	StyleFoodie       TravelStyle = "FOODIE"
	StyleNature       TravelStyle = "NATURE"
	StylePet          TravelStyle = "PET"
	StyleRelax        TravelStyle = "RELAX"
	StyleDigitalNomad TravelStyle = "DIGITAL_NOMAD"
)

// Budget is the user's spending tier. The form currently keeps this at the
// default and does not expose a visible control for it.
type Budget string

const (
	BudgetEconomy Budget = "ECONOMY"
	BudgetMid     Budget = "MID"
	BudgetLuxury  Budget = "LUXURY"
)

// UserPreferences is the immutable value produced by one form submission.
type UserPreferences struct {
	Duration int         `json:"duration"`
	Style    TravelStyle `json:"style"`
	Budget   Budget      `json:"budget"`
}

// Spot is a single point-of-interest visit within a day.
type Spot struct {
	Name                   string  `json:"name"`
	Description            string  `json:"description"`
	Category               string  `json:"category,omitempty"`
	Lat                    float64 `json:"lat"`
	Lng                    float64 `json:"lng"`
	NaverLink              string  `json:"naverLink,omitempty"`
	TravelTimeFromPrevious string  `json:"travelTimeFromPrevious,omitempty"`
}

// DailyPlan groups the ordered spots for one day plus an optional
// alternative suggestion that is not part of the main visit sequence.
type DailyPlan struct {
	Day             int    `json:"day"`
	Theme           string `json:"theme"`
	Spots           []Spot `json:"spots"`
	AlternativeSpot *Spot  `json:"alternativeSpot,omitempty"`
}

// RecommendedRoute is one complete AI-generated multi-day itinerary for a
// single selected city. It is only ever constructed from a generator
// response that passed schema validation, never partially populated.
type RecommendedRoute struct {
	Title         string      `json:"title"`
	Summary       string      `json:"summary"`
	SelectedCity  string      `json:"selectedCity"`
	TrendingScore float64     `json:"trendingScore,omitempty"`
	Tags          []string    `json:"tags,omitempty"`
	Days          []DailyPlan `json:"days"`
}

// HasRenderableSpots reports whether the route carries at least one day with
// at least one spot. Routes that fail this check render as the empty state
// instead of dereferencing an absent first spot.
func (r *RecommendedRoute) HasRenderableSpots() bool {
	if r == nil || len(r.Days) == 0 {
		return false
	}
	return len(r.Days[0].Spots) > 0
}
