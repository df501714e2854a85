package reports

import (
	"fmt"
	"strings"

	"skybrief/internal/briefing"
	"skybrief/internal/models"
)

// BuildMarkdown renders a briefing as a markdown report. The narrative
// leads, followed by one section per domain that answered.
func BuildMarkdown(b *briefing.DailyBriefing) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Sky Briefing for %s\n\n", b.Date.Format("January 2, 2006"))
	fmt.Fprintf(&sb, "Location: %.4f, %.4f\n\n", b.Location.Latitude, b.Location.Longitude)
	fmt.Fprintf(&sb, "%s\n\n", b.Narrative)

	if b.Score.Available {
		fmt.Fprintf(&sb, "## Viewing Conditions: %s (%d/100)\n\n", b.Score.Category, b.Score.Score)
		for _, rec := range b.Score.Recommendations {
			fmt.Fprintf(&sb, "- %s\n", rec)
		}
		sb.WriteString("\n")
	}

	writeSunSection(&sb, b.Sky.Sun)
	writeMoonSection(&sb, b.Sky.Moon)
	writePlanetsSection(&sb, b.Sky.Planets)
	writeMeteorsSection(&sb, b.Sky.Meteors)
	writeEclipseSection(&sb, b.Sky.Eclipse)
	writeSpaceWeatherSection(&sb, b.Sky.SpaceWeather)
	writeCloudsSection(&sb, b.Sky.Clouds)

	return sb.String()
}

func writeSunSection(sb *strings.Builder, r models.SourceResult[models.SunTimes]) {
	if !r.Available() {
		return
	}
	s := r.Data

	sb.WriteString("## Sun\n\n")
	fmt.Fprintf(sb, "| Event | Time (UTC) |\n|---|---|\n")
	fmt.Fprintf(sb, "| Astronomical dawn | %s |\n", s.AstronomicalDawn.Clock())
	fmt.Fprintf(sb, "| Sunrise | %s |\n", s.Sunrise.Clock())
	fmt.Fprintf(sb, "| Solar noon | %s |\n", s.SolarNoon.Format("15:04"))
	fmt.Fprintf(sb, "| Golden hour | %s |\n", s.GoldenHourStart.Clock())
	fmt.Fprintf(sb, "| Sunset | %s |\n", s.Sunset.Clock())
	fmt.Fprintf(sb, "| Astronomical dusk | %s |\n", s.AstronomicalDusk.Clock())
	fmt.Fprintf(sb, "\nDay length: %dh %dm\n\n",
		int(s.DayLength.Hours()), int(s.DayLength.Minutes())%60)
}

func writeMoonSection(sb *strings.Builder, r models.SourceResult[models.MoonState]) {
	if !r.Available() {
		return
	}
	m := r.Data

	sb.WriteString("## Moon\n\n")
	fmt.Fprintf(sb, "- Phase: %s (%.0f%% illuminated, %.1f days old)\n", m.Phase, m.Illumination*100, m.AgeDays)
	fmt.Fprintf(sb, "- Rise %s, set %s (UTC)\n", m.Rise.Clock(), m.Set.Clock())
	fmt.Fprintf(sb, "- Distance: %.0f km\n", m.DistanceKm)
	fmt.Fprintf(sb, "- Next new moon %s, next full moon %s\n\n",
		m.NextNewMoon.Format("Jan 2"), m.NextFullMoon.Format("Jan 2"))
}

func writePlanetsSection(sb *strings.Builder, r models.SourceResult[[]models.PlanetSighting]) {
	if !r.Available() {
		return
	}

	sb.WriteString("## Planets\n\n")
	sb.WriteString("| Planet | Visible | Magnitude | When to look |\n|---|---|---|---|\n")
	for _, p := range r.Data {
		visible := "no"
		hint := p.Window
		if p.Visible {
			visible = "yes"
			if p.Hint != "" {
				hint = p.Hint
			}
		}
		fmt.Fprintf(sb, "| %s | %s | %.1f | %s |\n", p.Name, visible, p.Magnitude, hint)
	}
	sb.WriteString("\n")
}

func writeMeteorsSection(sb *strings.Builder, r models.SourceResult[models.MeteorActivity]) {
	if !r.Available() {
		return
	}

	sb.WriteString("## Meteor Showers\n\n")
	if len(r.Data.Active) == 0 {
		sb.WriteString("No showers active tonight.\n")
	}
	for _, s := range r.Data.Active {
		fmt.Fprintf(sb, "- **%s** (%s): ~%.0f meteors/hour tonight, rated %s. Radiant in %s, from %s.\n",
			s.Name, peakPhrase(s), s.EffectiveZHR, s.Rating, s.Radiant, s.ParentBody)
	}
	if len(r.Data.Upcoming) > 0 {
		sb.WriteString("\nComing up:\n")
		for _, s := range r.Data.Upcoming {
			fmt.Fprintf(sb, "- %s peaks %s (ZHR %d)\n", s.Name, s.Peak.Format("Jan 2"), s.ZHR)
		}
	}
	sb.WriteString("\n")
}

func peakPhrase(s models.ShowerActivity) string {
	if s.DaysFromPeak == 0 {
		return "peaking tonight"
	}
	return fmt.Sprintf("%d days from peak", s.DaysFromPeak)
}

func writeEclipseSection(sb *strings.Builder, r models.SourceResult[models.EclipseOutlook]) {
	if !r.Available() {
		return
	}
	e := r.Data

	sb.WriteString("## Next Eclipse\n\n")
	fmt.Fprintf(sb, "**%s** on %s, maximum at %s UTC (magnitude %.3f), %d days away.\n",
		e.Type, e.Date.Format("January 2, 2006"), e.MaxAt.Format("15:04"), e.Magnitude, e.DaysUntil)
	if e.DurationMinutes > 0 {
		fmt.Fprintf(sb, "Duration of the main phase: %.1f minutes.\n", e.DurationMinutes)
	}
	fmt.Fprintf(sb, "Visible from: %s.\n", strings.Join(e.Regions, ", "))
	if e.Notes != "" {
		fmt.Fprintf(sb, "%s.\n", e.Notes)
	}
	sb.WriteString("\n")
}

func writeSpaceWeatherSection(sb *strings.Builder, r models.SourceResult[models.SpaceWeather]) {
	if !r.Available() {
		return
	}
	sw := r.Data

	sb.WriteString("## Space Weather\n\n")
	fmt.Fprintf(sb, "- Kp now %.1f, 24h max %.1f (%s)\n", sw.KpNow, sw.KpMax24h, sw.Activity)
	fmt.Fprintf(sb, "- %s\n", sw.AuroraOutlook)
	if sw.SolarWindSpeed > 0 {
		elevated := ""
		if sw.SolarWindElevated {
			elevated = " (elevated)"
		}
		fmt.Fprintf(sb, "- Solar wind %.0f km/s at %.1f protons/cm3%s\n", sw.SolarWindSpeed, sw.SolarWindDensity, elevated)
	}
	for _, ev := range sw.Events {
		fmt.Fprintf(sb, "- Bulletin: %s\n", ev.Title)
	}
	sb.WriteString("\n")
}

func writeCloudsSection(sb *strings.Builder, r models.SourceResult[models.NightClouds]) {
	if !r.Available() {
		return
	}
	c := r.Data

	sb.WriteString("## Cloud Forecast\n\n")
	fmt.Fprintf(sb, "Average %.0f%% cover over %d night hours (best hour %.0f%%). Low/mid/high: %.0f/%.0f/%.0f%%.\n\n",
		c.AvgCloudCover, c.SampleHours, c.MinCloudCover, c.AvgLow, c.AvgMid, c.AvgHigh)
}
