package generator

import "google.golang.org/genai"

// responseSchemaJSON is the contract the model response is validated against
// before a RecommendedRoute is ever constructed. It mirrors routeSchema below.
const responseSchemaJSON = `{
  "type": "object",
  "properties": {
    "title": {"type": "string"},
    "summary": {"type": "string"},
    "selectedCity": {"type": "string"},
    "trendingScore": {"type": "number"},
    "tags": {"type": "array", "items": {"type": "string"}},
    "days": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "day": {"type": "number"},
          "theme": {"type": "string"},
          "spots": {
            "type": "array",
            "items": {
              "type": "object",
              "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "category": {"type": "string"},
                "lat": {"type": "number"},
                "lng": {"type": "number"},
                "naverLink": {"type": "string"},
                "travelTimeFromPrevious": {"type": "string"}
              },
              "required": ["name", "description", "lat", "lng", "naverLink"]
            }
          },
          "alternativeSpot": {
            "type": "object",
            "properties": {
              "name": {"type": "string"},
              "description": {"type": "string"},
              "category": {"type": "string"},
              "naverLink": {"type": "string"}
            }
          }
        },
        "required": ["day", "theme", "spots"]
      }
    }
  },
  "required": ["title", "summary", "selectedCity", "days"]
}`

// routeSchema is the structured-output schema sent with the Gemini request so
// the model is constrained to the RecommendedRoute shape in the first place.
func routeSchema() *genai.Schema {
	spotSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":                   {Type: genai.TypeString},
			"description":            {Type: genai.TypeString},
			"category":               {Type: genai.TypeString},
			"lat":                    {Type: genai.TypeNumber},
			"lng":                    {Type: genai.TypeNumber},
			"naverLink":              {Type: genai.TypeString},
			"travelTimeFromPrevious": {Type: genai.TypeString},
		},
		Required: []string{"name", "description", "lat", "lng", "naverLink"},
	}

	daySchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"day":   {Type: genai.TypeNumber},
			"theme": {Type: genai.TypeString},
			"spots": {Type: genai.TypeArray, Items: spotSchema},
			"alternativeSpot": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":        {Type: genai.TypeString},
					"description": {Type: genai.TypeString},
					"category":    {Type: genai.TypeString},
					"naverLink":   {Type: genai.TypeString},
				},
			},
		},
		Required: []string{"day", "theme", "spots"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":         {Type: genai.TypeString},
			"summary":       {Type: genai.TypeString},
			"selectedCity":  {Type: genai.TypeString},
			"trendingScore": {Type: genai.TypeNumber},
			"tags":          {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"days":          {Type: genai.TypeArray, Items: daySchema},
		},
		Required: []string{"title", "summary", "selectedCity", "days"},
	}
}
