package models

import "time"

// MoonState describes the Moon for one date and location.
type MoonState struct {
	Phase          string    `json:"phase"`            // conventional phase name
	PhaseAngle     float64   `json:"phase_angle"`      // degrees, 0 new / 180 full
	Illumination   float64   `json:"illumination"`     // fraction [0, 1]
	AgeDays        float64   `json:"age_days"`         // days since new moon
	Rise           EventTime `json:"rise"`
	Set            EventTime `json:"set"`
	DistanceKm     float64   `json:"distance_km"`
	NextNewMoon    time.Time `json:"next_new_moon"`
	NextFullMoon   time.Time `json:"next_full_moon"`
}

// SunTimes describes the solar day for one date and location. All times
// are UTC. Twilight events may be absent at high latitudes.
type SunTimes struct {
	Sunrise            EventTime     `json:"sunrise"`
	Sunset             EventTime     `json:"sunset"`
	SolarNoon          time.Time     `json:"solar_noon"`
	DayLength          time.Duration `json:"day_length"`
	CivilDawn          EventTime     `json:"civil_dawn"`
	CivilDusk          EventTime     `json:"civil_dusk"`
	NauticalDawn       EventTime     `json:"nautical_dawn"`
	NauticalDusk       EventTime     `json:"nautical_dusk"`
	AstronomicalDawn   EventTime     `json:"astronomical_dawn"`
	AstronomicalDusk   EventTime     `json:"astronomical_dusk"`
	GoldenHourStart    EventTime     `json:"golden_hour_start"` // evening, ends at sunset
}

// HasAstronomicalNight reports whether the sky gets fully dark: the Sun
// reaches 18 degrees below the horizon at some point in the day.
func (s SunTimes) HasAstronomicalNight() bool {
	// When dusk exists the sky darkens after it. Polar summer has neither
	// dusk nor dawn while the Sun stays up, so both absent with a long
	// day means no darkness; both absent with no sunrise is polar night,
	// which is dark throughout.
	if s.AstronomicalDusk.Occurs || s.AstronomicalDawn.Occurs {
		return true
	}
	return !s.Sunrise.Occurs && !s.Sunset.Occurs && s.DayLength == 0
}

// PlanetSighting describes one planet's visibility for the night.
type PlanetSighting struct {
	Name       string    `json:"name"`
	Visible    bool      `json:"visible"`
	Magnitude  float64   `json:"magnitude"`
	Elongation float64   `json:"elongation"` // degrees from the Sun
	Window     string    `json:"window"`     // when to look
	Hint       string    `json:"hint"`       // where to look
	Rise       EventTime `json:"rise"`
	Set        EventTime `json:"set"`
}

// ShowerActivity describes a meteor shower's state on the target date.
type ShowerActivity struct {
	Name         string    `json:"name"`
	ParentBody   string    `json:"parent_body"`
	Radiant      string    `json:"radiant"`
	ZHR          int       `json:"zhr"`            // zenithal hourly rate at peak
	EffectiveZHR float64   `json:"effective_zhr"`  // scaled by distance from peak
	Peak         time.Time `json:"peak"`
	DaysFromPeak int       `json:"days_from_peak"` // absolute value
	Rating       string    `json:"rating"`         // Poor/Fair/Good/Excellent
}

// MeteorActivity groups the showers active on the target date and the
// next upcoming ones.
type MeteorActivity struct {
	Active   []ShowerActivity `json:"active"`
	Upcoming []ShowerActivity `json:"upcoming"`
}

// EclipseOutlook describes the next eclipse after the target date.
type EclipseOutlook struct {
	Type            string    `json:"type"` // e.g. "Total Solar", "Penumbral Lunar"
	Date            time.Time `json:"date"`
	MaxAt           time.Time `json:"max_at"`
	DurationMinutes float64   `json:"duration_minutes,omitempty"` // totality/annularity, 0 for partial
	Magnitude       float64   `json:"magnitude"`
	Regions         []string  `json:"regions"`
	Notes           string    `json:"notes,omitempty"`
	DaysUntil       int       `json:"days_until"`
}

// IsSoon reports whether the eclipse is close enough to call out in a
// briefing.
func (e EclipseOutlook) IsSoon() bool {
	return e.DaysUntil <= 30
}

// KpForecastEntry is one forecast point of the planetary K index.
type KpForecastEntry struct {
	Time time.Time `json:"time"`
	Kp   float64   `json:"kp"`
}

// SolarEvent is a notable solar activity bulletin from an event feed.
type SolarEvent struct {
	Title     string    `json:"title"`
	Published time.Time `json:"published"`
	Link      string    `json:"link,omitempty"`
}

// SpaceWeather describes current geomagnetic and solar wind conditions.
type SpaceWeather struct {
	KpNow             float64           `json:"kp_now"`
	KpMax24h          float64           `json:"kp_max_24h"`
	Activity          string            `json:"activity"` // Quiet .. Extreme Storm (G5)
	SolarWindSpeed    float64           `json:"solar_wind_speed"`   // km/s
	SolarWindDensity  float64           `json:"solar_wind_density"` // protons/cm3
	SolarWindElevated bool              `json:"solar_wind_elevated"`
	AuroraLatitude    float64           `json:"aurora_latitude"` // lowest latitude with a chance
	AuroraOutlook     string            `json:"aurora_outlook"`
	Forecast          []KpForecastEntry `json:"forecast,omitempty"`
	Events            []SolarEvent      `json:"events,omitempty"`
}

// NightClouds summarizes forecast cloud cover over the coming night.
type NightClouds struct {
	AvgCloudCover float64 `json:"avg_cloud_cover"` // percent
	MinCloudCover float64 `json:"min_cloud_cover"` // percent
	AvgLow        float64 `json:"avg_low"`
	AvgMid        float64 `json:"avg_mid"`
	AvgHigh       float64 `json:"avg_high"`
	SampleHours   int     `json:"sample_hours"`
}

// SkyData is the complete result set the orchestrator hands downstream.
// Every field is populated for every run; provenance tells the consumer
// which domains actually answered.
type SkyData struct {
	Location     GeoLocation                  `json:"location"`
	Date         time.Time                    `json:"date"`
	Moon         SourceResult[MoonState]      `json:"moon"`
	Sun          SourceResult[SunTimes]       `json:"sun"`
	Planets      SourceResult[[]PlanetSighting] `json:"planets"`
	Meteors      SourceResult[MeteorActivity] `json:"meteors"`
	Eclipse      SourceResult[EclipseOutlook] `json:"eclipse"`
	SpaceWeather SourceResult[SpaceWeather]   `json:"space_weather"`
	Clouds       SourceResult[NightClouds]    `json:"clouds"`
}

// ProvenanceSummary maps each domain to where its data came from.
func (d SkyData) ProvenanceSummary() map[string]Provenance {
	return map[string]Provenance{
		"moon":          d.Moon.Provenance,
		"sun":           d.Sun.Provenance,
		"planets":       d.Planets.Provenance,
		"meteors":       d.Meteors.Provenance,
		"eclipse":       d.Eclipse.Provenance,
		"space_weather": d.SpaceWeather.Provenance,
		"clouds":        d.Clouds.Provenance,
	}
}
