// Package refdata holds the cities and divisions suppliers may register in.
package refdata

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

var defaultDivisions = []string{
	"Barishal", "Chattogram", "Dhaka", "Khulna",
	"Mymensingh", "Rajshahi", "Rangpur", "Sylhet",
}

var defaultCities = []string{
	"Barishal", "Bogura", "Brahmanbaria", "Chattogram", "Cox's Bazar",
	"Cumilla", "Dhaka", "Dinajpur", "Faridpur", "Feni", "Gazipur",
	"Jashore", "Jamalpur", "Khulna", "Kushtia", "Mymensingh",
	"Narayanganj", "Narsingdi", "Noakhali", "Pabna", "Rajshahi",
	"Rangamati", "Rangpur", "Savar", "Sirajganj", "Sylhet", "Tangail",
}

// Locations is an immutable, case-insensitive lookup over cities and
// divisions.
type Locations struct {
	cities    []string
	divisions []string
	cityIdx   map[string]string
	divIdx    map[string]string
}

// Default returns the built-in Bangladesh reference data.
func Default() *Locations {
	return New(defaultCities, defaultDivisions)
}

func New(cities, divisions []string) *Locations {
	l := &Locations{}
	l.cities, l.cityIdx = index(cities)
	l.divisions, l.divIdx = index(divisions)
	return l
}

// Load reads a YAML, JSON or TOML file with "cities" and "divisions" lists.
// A list missing from the file keeps its built-in value.
func Load(path string) (*Locations, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("cities", defaultCities)
	v.SetDefault("divisions", defaultDivisions)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("refdata: read %s: %w", path, err)
	}

	cities := v.GetStringSlice("cities")
	divisions := v.GetStringSlice("divisions")
	if len(cities) == 0 || len(divisions) == 0 {
		return nil, fmt.Errorf("refdata: %s: cities and divisions must not be empty", path)
	}
	return New(cities, divisions), nil
}

func (l *Locations) Cities() []string    { return append([]string(nil), l.cities...) }
func (l *Locations) Divisions() []string { return append([]string(nil), l.divisions...) }

func (l *Locations) ResolveCity(name string) (string, bool) {
	v, ok := l.cityIdx[key(name)]
	return v, ok
}

func (l *Locations) ResolveDivision(name string) (string, bool) {
	v, ok := l.divIdx[key(name)]
	return v, ok
}

// index trims, de-duplicates and sorts the names.
func index(names []string) ([]string, map[string]string) {
	idx := make(map[string]string, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, dup := idx[key(n)]; dup {
			continue
		}
		idx[key(n)] = n
		out = append(out, n)
	}
	sort.Strings(out)
	return out, idx
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
