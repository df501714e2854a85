package briefing

// Tonight is the condensed at-a-glance projection of a briefing: just
// the verdict and the headline sights, for widgets and quick checks.
type Tonight struct {
	Date           string   `json:"date"`
	Score          int      `json:"score"`
	Category       string   `json:"category"`
	Headline       string   `json:"headline"`
	MoonPhase      string   `json:"moon_phase,omitempty"`
	VisiblePlanets []string `json:"visible_planets,omitempty"`
	ActiveShowers  []string `json:"active_showers,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// ProjectTonight condenses a briefing.
func ProjectTonight(b *DailyBriefing) Tonight {
	t := Tonight{
		Date:     b.Date.Format("2006-01-02"),
		Score:    b.Score.Score,
		Category: b.Score.Category,
		Headline: tonightHeadline(b),
	}

	if b.Sky.Moon.Available() {
		t.MoonPhase = b.Sky.Moon.Data.Phase
	}
	if b.Sky.Planets.Available() {
		for _, p := range b.Sky.Planets.Data {
			if p.Visible {
				t.VisiblePlanets = append(t.VisiblePlanets, p.Name)
			}
		}
	}
	if b.Sky.Meteors.Available() {
		for _, s := range b.Sky.Meteors.Data.Active {
			t.ActiveShowers = append(t.ActiveShowers, s.Name)
		}
	}
	if len(b.Score.Recommendations) > 0 {
		t.Recommendation = b.Score.Recommendations[0]
	}

	return t
}

func tonightHeadline(b *DailyBriefing) string {
	if !b.Score.Available {
		return "Viewing conditions are unknown tonight."
	}

	switch b.Score.Category {
	case "Excellent":
		return "A great night for stargazing."
	case "Good":
		return "A good night to get outside."
	case "Fair":
		return "Workable conditions with some compromises."
	default:
		return "Not much of a night for the stars."
	}
}
