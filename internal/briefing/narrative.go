package briefing

import (
	"fmt"
	"strings"
	"time"

	"skybrief/internal/models"
)

// narrativeUnavailable is the whole narrative when no domain answered.
const narrativeUnavailable = "Sky data is currently unavailable."

// kpNarrativeThreshold keeps quiet geomagnetic conditions out of the
// narrative; nobody needs to hear about Kp 1.
const kpNarrativeThreshold = 4.0

// Narrative renders the briefing as spoken-style prose. Sentences are
// complete and self-contained so the text reads well through a screen
// reader, and quiet domains stay silent rather than padding the text.
func Narrative(b *DailyBriefing) string {
	sky := b.Sky

	var sentences []string
	if s := sunSentence(sky.Sun); s != "" {
		sentences = append(sentences, s)
	}
	if s := moonSentence(sky.Moon); s != "" {
		sentences = append(sentences, s)
	}
	if s := eclipseSentence(sky.Eclipse); s != "" {
		sentences = append(sentences, s)
	}
	if s := planetsSentence(sky.Planets); s != "" {
		sentences = append(sentences, s)
	}
	if s := meteorsSentence(sky.Meteors); s != "" {
		sentences = append(sentences, s)
	}
	if s := spaceWeatherSentence(sky.SpaceWeather); s != "" {
		sentences = append(sentences, s)
	}

	if len(sentences) == 0 {
		return narrativeUnavailable
	}

	if b.Score.Available {
		sentences = append(sentences, fmt.Sprintf(
			"Viewing conditions rate %s, %d out of 100.",
			b.Score.Category, b.Score.Score))
	}

	return strings.Join(sentences, " ")
}

func sunSentence(r models.SourceResult[models.SunTimes]) string {
	if !r.Available() {
		return ""
	}
	s := r.Data

	if !s.Sunrise.Occurs && !s.Sunset.Occurs {
		if s.DayLength >= 24*time.Hour {
			return "The sun stays above the horizon all day at this latitude."
		}
		return "The sun does not rise today at this latitude."
	}

	hours := int(s.DayLength.Hours())
	minutes := int(s.DayLength.Minutes()) % 60
	return fmt.Sprintf("Sunrise is at %s UTC and sunset at %s UTC, giving %d hours %d minutes of daylight.",
		s.Sunrise.Clock(), s.Sunset.Clock(), hours, minutes)
}

func moonSentence(r models.SourceResult[models.MoonState]) string {
	if !r.Available() {
		return ""
	}
	m := r.Data

	base := fmt.Sprintf("The moon is a %s at %.0f percent illumination", m.Phase, m.Illumination*100)

	switch {
	case m.Rise.Occurs && m.Set.Occurs:
		return fmt.Sprintf("%s, rising at %s and setting at %s.", base, m.Rise.Clock(), m.Set.Clock())
	case m.Rise.Occurs:
		return fmt.Sprintf("%s, rising at %s.", base, m.Rise.Clock())
	case m.Set.Occurs:
		return fmt.Sprintf("%s, setting at %s.", base, m.Set.Clock())
	default:
		return base + "."
	}
}

func eclipseSentence(r models.SourceResult[models.EclipseOutlook]) string {
	if !r.Available() || !r.Data.IsSoon() {
		return ""
	}
	e := r.Data

	when := fmt.Sprintf("%d days from now", e.DaysUntil)
	switch e.DaysUntil {
	case 0:
		when = "today"
	case 1:
		when = "tomorrow"
	}

	return fmt.Sprintf("A %s eclipse is coming on %s, %s.",
		strings.ToLower(e.Type), e.Date.Format("January 2"), when)
}

func planetsSentence(r models.SourceResult[[]models.PlanetSighting]) string {
	if !r.Available() {
		return ""
	}

	var names []string
	for _, p := range r.Data {
		if p.Visible {
			names = append(names, p.Name)
		}
	}

	switch len(names) {
	case 0:
		return "No planets are well placed tonight."
	case 1:
		return fmt.Sprintf("%s is visible tonight.", names[0])
	default:
		return fmt.Sprintf("%s are visible tonight.", humanList(names))
	}
}

func meteorsSentence(r models.SourceResult[models.MeteorActivity]) string {
	if !r.Available() || len(r.Data.Active) == 0 {
		return ""
	}

	active := r.Data.Active
	if len(active) == 1 {
		s := active[0]
		return fmt.Sprintf("The %s meteor shower is active, with up to %d meteors per hour at its peak.",
			s.Name, s.ZHR)
	}

	var names []string
	for _, s := range active {
		names = append(names, s.Name)
	}
	return fmt.Sprintf("The %s meteor showers are active.", humanList(names))
}

func spaceWeatherSentence(r models.SourceResult[models.SpaceWeather]) string {
	if !r.Available() || r.Data.KpMax24h < kpNarrativeThreshold {
		return ""
	}
	sw := r.Data

	sentence := fmt.Sprintf("Geomagnetic activity is elevated at Kp %.1f, %s.", sw.KpMax24h, sw.Activity)
	if sw.AuroraOutlook != "" {
		sentence += " " + sw.AuroraOutlook + "."
	}
	return sentence
}

// humanList joins names as "A and B" or "A, B, and C".
func humanList(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}
