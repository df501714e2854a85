// Package catalog serves the embedded meteor shower and eclipse tables.
// Both tables ship inside the binary so the calculators that use them
// never depend on the network.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed showers.yaml
var showersYAML []byte

//go:embed eclipses.yaml
var eclipsesYAML []byte

// MonthDay is a recurring calendar date without a year.
type MonthDay struct {
	Month int `yaml:"month"`
	Day   int `yaml:"day"`
}

// In resolves the recurring date to a concrete UTC midnight in year.
func (md MonthDay) In(year int) time.Time {
	return time.Date(year, time.Month(md.Month), md.Day, 0, 0, 0, 0, time.UTC)
}

// MeteorShower is one annual shower from the embedded table.
type MeteorShower struct {
	Name        string   `yaml:"name"`
	Start       MonthDay `yaml:"start"`
	End         MonthDay `yaml:"end"`
	Peak        MonthDay `yaml:"peak"`
	ZHR         int      `yaml:"zhr"`
	ParentBody  string   `yaml:"parent_body"`
	Radiant     string   `yaml:"radiant"`
	VelocityKms int      `yaml:"velocity_kms"`
}

// ActiveOn reports whether the shower's activity window covers date.
// Windows that wrap the year boundary are handled.
func (s MeteorShower) ActiveOn(date time.Time) bool {
	y := date.Year()
	start := s.Start.In(y)
	end := s.End.In(y)
	d := time.Date(y, date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	if !end.Before(start) {
		return !d.Before(start) && !d.After(end)
	}
	// Window wraps December into January.
	return !d.Before(start) || !d.After(end)
}

// PeakIn returns the shower's peak for the activity window containing or
// nearest to date's year.
func (s MeteorShower) PeakIn(year int) time.Time {
	return s.Peak.In(year)
}

// DaysFromPeak returns the signed day count from the nearest peak to
// date. Negative values mean the peak is still ahead.
func (s MeteorShower) DaysFromPeak(date time.Time) int {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	best := 1 << 30
	for _, y := range []int{date.Year() - 1, date.Year(), date.Year() + 1} {
		delta := int(d.Sub(s.Peak.In(y)).Hours() / 24)
		if abs(delta) < abs(best) {
			best = delta
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Eclipse is one entry from the embedded eclipse table.
type Eclipse struct {
	Type            string   `yaml:"type"`
	DateString      string   `yaml:"date"`
	MaxUTC          string   `yaml:"max_utc"`
	DurationMinutes float64  `yaml:"duration_minutes"`
	Magnitude       float64  `yaml:"magnitude"`
	Regions         []string `yaml:"regions"`
	Notes           string   `yaml:"notes"`

	// Parsed at load time.
	Date  time.Time `yaml:"-"`
	MaxAt time.Time `yaml:"-"`
}

// IsSolar reports whether this is a solar (as opposed to lunar) eclipse.
func (e Eclipse) IsSolar() bool {
	return strings.HasSuffix(e.Type, "Solar")
}

type showerFile struct {
	Showers []MeteorShower `yaml:"showers"`
}

type eclipseFile struct {
	Eclipses []Eclipse `yaml:"eclipses"`
}

var (
	loadOnce sync.Once
	loadErr  error
	showers  []MeteorShower
	eclipses []Eclipse
)

func load() error {
	loadOnce.Do(func() {
		var sf showerFile
		if err := yaml.Unmarshal(showersYAML, &sf); err != nil {
			loadErr = fmt.Errorf("parsing shower table: %w", err)
			return
		}

		var ef eclipseFile
		if err := yaml.Unmarshal(eclipsesYAML, &ef); err != nil {
			loadErr = fmt.Errorf("parsing eclipse table: %w", err)
			return
		}

		for i := range ef.Eclipses {
			e := &ef.Eclipses[i]
			date, err := time.Parse("2006-01-02", e.DateString)
			if err != nil {
				loadErr = fmt.Errorf("eclipse %q: bad date %q: %w", e.Type, e.DateString, err)
				return
			}
			maxAt, err := time.Parse("2006-01-02 15:04", e.DateString+" "+e.MaxUTC)
			if err != nil {
				loadErr = fmt.Errorf("eclipse %q: bad max time %q: %w", e.Type, e.MaxUTC, err)
				return
			}
			e.Date = date
			e.MaxAt = maxAt
		}

		showers = sf.Showers
		eclipses = ef.Eclipses
	})
	return loadErr
}

// Showers returns the full annual shower table.
func Showers() ([]MeteorShower, error) {
	if err := load(); err != nil {
		return nil, err
	}
	return showers, nil
}

// Eclipses returns the full eclipse table in chronological order.
func Eclipses() ([]Eclipse, error) {
	if err := load(); err != nil {
		return nil, err
	}
	return eclipses, nil
}

// ActiveShowers returns the showers whose windows cover date.
func ActiveShowers(date time.Time) ([]MeteorShower, error) {
	all, err := Showers()
	if err != nil {
		return nil, err
	}

	var active []MeteorShower
	for _, s := range all {
		if s.ActiveOn(date) {
			active = append(active, s)
		}
	}
	return active, nil
}

// UpcomingShowers returns up to limit showers whose peaks fall after
// date, soonest first.
func UpcomingShowers(date time.Time, limit int) ([]MeteorShower, error) {
	all, err := Showers()
	if err != nil {
		return nil, err
	}

	type upcoming struct {
		shower MeteorShower
		peak   time.Time
	}

	var candidates []upcoming
	for _, s := range all {
		for _, y := range []int{date.Year(), date.Year() + 1} {
			if peak := s.PeakIn(y); peak.After(date) {
				candidates = append(candidates, upcoming{s, peak})
				break
			}
		}
	}

	// Small list, selection sort by peak is fine.
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			if candidates[j].peak.Before(candidates[i].peak) {
				candidates[i], candidates[j] = candidates[j], candidates[i]
			}
		}
	}

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	result := make([]MeteorShower, len(candidates))
	for i, c := range candidates {
		result[i] = c.shower
	}
	return result, nil
}

// NextEclipse returns the first eclipse at or after date.
func NextEclipse(date time.Time) (Eclipse, bool, error) {
	all, err := Eclipses()
	if err != nil {
		return Eclipse{}, false, err
	}

	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	for _, e := range all {
		if !e.Date.Before(d) {
			return e, true, nil
		}
	}
	return Eclipse{}, false, nil
}

// UpcomingEclipses returns up to limit eclipses at or after date.
func UpcomingEclipses(date time.Time, limit int) ([]Eclipse, error) {
	all, err := Eclipses()
	if err != nil {
		return nil, err
	}

	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	var result []Eclipse
	for _, e := range all {
		if e.Date.Before(d) {
			continue
		}
		result = append(result, e)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}
