package palette

// Recommendation suggests subjects for a tone the catalog lacks.
type Recommendation struct {
	Tone     Tone     `json:"tone"`
	Percent  float64  `json:"percent"`
	Minimum  float64  `json:"minimum"`
	Subjects []string `json:"subjects"`
}

type rule struct {
	tones    []Tone
	minimum  float64
	subjects []string
}

var rules = []rule{
	{
		tones:    []Tone{Warm, Yellow},
		minimum:  20,
		subjects: []string{"sunsets", "temples", "night markets", "red brick architecture"},
	},
	{
		tones:    []Tone{Blue},
		minimum:  20,
		subjects: []string{"clear blue skies", "ocean views", "modern glass architecture"},
	},
	{
		tones:    []Tone{Green},
		minimum:  20,
		subjects: []string{"forests", "mountains", "parks", "tea plantations"},
	},
	{
		tones:    []Tone{Purple},
		minimum:  5,
		subjects: []string{"neon lights", "lavender and hydrangea fields", "sunrises"},
	},
}

// Recommend lists the tone families whose share falls below their minimum.
// Warm and yellow are judged together and reported as warm.
func Recommend(s Stats) []Recommendation {
	if s.Total == 0 {
		return nil
	}
	var out []Recommendation
	for _, r := range rules {
		pct := 0.0
		for _, t := range r.tones {
			pct += s.Percent(t)
		}
		if pct < r.minimum {
			out = append(out, Recommendation{
				Tone:     r.tones[0],
				Percent:  pct,
				Minimum:  r.minimum,
				Subjects: r.subjects,
			})
		}
	}
	return out
}
