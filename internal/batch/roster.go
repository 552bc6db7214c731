// Package batch evaluates a TOML roster of birth records concurrently and
// can re-run it whenever the roster file changes.
package batch

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidRoster is returned when a roster cannot be parsed or a record is
// missing a required field.
var ErrInvalidRoster = errors.New("invalid roster")

// Roster is a list of people read from a roster file:
//
//	[defaults]
//	calendar = "solar"
//	luck = true
//
//	[[person]]
//	name = "Ada"
//	birth = "1996-05-07 15:00"
//	gender = "female"
type Roster struct {
	Defaults Defaults `toml:"defaults"`
	People   []Person `toml:"person"`
}

// Defaults fill fields a person leaves unset.
type Defaults struct {
	Calendar string `toml:"calendar"`
	Luck     bool   `toml:"luck"`
	Year     int    `toml:"year"`
}

// Person is one birth record.
type Person struct {
	Name     string `toml:"name"`
	Birth    string `toml:"birth"`
	Gender   string `toml:"gender"`
	Calendar string `toml:"calendar"`
	Luck     *bool  `toml:"luck"`
	// Year requests an annual snapshot for that Gregorian year.
	Year int `toml:"year"`
}

// Label names the person for display, falling back to the birth string.
func (p Person) Label() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Birth
}

// LoadRoster reads and parses the roster at path.
func LoadRoster(path string) (Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Roster{}, fmt.Errorf("batch: read roster: %w", err)
	}
	return ParseRoster(data)
}

// ParseRoster parses roster TOML and applies defaults to every person.
func ParseRoster(data []byte) (Roster, error) {
	var r Roster
	if err := toml.Unmarshal(data, &r); err != nil {
		return Roster{}, fmt.Errorf("%w: %v", ErrInvalidRoster, err)
	}

	var errs []error
	for i := range r.People {
		p := &r.People[i]
		p.Birth = strings.TrimSpace(p.Birth)
		if p.Birth == "" {
			errs = append(errs, fmt.Errorf("%w: person %d (%s): birth is required", ErrInvalidRoster, i+1, p.Name))
		}
		if strings.TrimSpace(p.Gender) == "" {
			errs = append(errs, fmt.Errorf("%w: person %d (%s): gender is required", ErrInvalidRoster, i+1, p.Label()))
		}
		if p.Calendar == "" {
			p.Calendar = r.Defaults.Calendar
		}
		if p.Luck == nil {
			luck := r.Defaults.Luck
			p.Luck = &luck
		}
		if p.Year == 0 {
			p.Year = r.Defaults.Year
		}
	}
	if err := errors.Join(errs...); err != nil {
		return Roster{}, err
	}
	return r, nil
}
