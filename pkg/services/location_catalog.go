package services

import (
	"fmt"
	"sort"
	"strings"
)

// LocationOffset pairs a location name with its position in the model's
// one-hot location block.
type LocationOffset struct {
	Name   string `json:"name"`
	Offset int    `json:"offset"`
}

// defaultLocations is the location layout the bundled model was trained with.
// The offsets are sparse (step 10) and must not be renumbered.
var defaultLocations = []LocationOffset{
	{"Whitefield", 0}, {"HSR Layout", 10}, {"Electronic City", 20},
	{"Marathahalli", 30}, {"Koramangala", 40}, {"Indiranagar", 50},
	{"JP Nagar", 60}, {"Bannerghatta Road", 70}, {"Sarjapur Road", 80},
	{"Hebbal", 90}, {"Banashankari", 100}, {"BTM Layout", 110},
	{"Jayanagar", 120}, {"Bellandur", 130}, {"CV Raman Nagar", 140},
	{"Malleswaram", 150}, {"Old Airport Road", 160}, {"Rajaji Nagar", 170},
	{"Yelahanka", 180}, {"KR Puram", 190}, {"Mahadevapura", 200},
	{"Thanisandra", 210}, {"Kengeri", 220}, {"Hoodi", 230},
}

// LocationCatalog is an immutable name -> offset table. It is built once and
// shared read-only between requests.
type LocationCatalog struct {
	entries []LocationOffset // offset order
	byName  map[string]int
	names   []string // alphabetical
}

// DefaultLocationCatalog returns the built-in Bangalore catalog.
func DefaultLocationCatalog() *LocationCatalog {
	c, err := NewLocationCatalog(defaultLocations)
	if err != nil {
		// the built-in table is fixed; failing here is a programming error
		panic(err)
	}
	return c
}

// NewLocationCatalog validates entries and builds a catalog. Names must be
// non-empty and unique, offsets unique and inside the feature vector.
func NewLocationCatalog(entries []LocationOffset) (*LocationCatalog, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("location catalog is empty")
	}

	c := &LocationCatalog{
		entries: make([]LocationOffset, 0, len(entries)),
		byName:  make(map[string]int, len(entries)),
		names:   make([]string, 0, len(entries)),
	}
	seenOffsets := make(map[int]string, len(entries))

	for _, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("location with offset %d has no name", e.Offset)
		}
		if _, dup := c.byName[name]; dup {
			return nil, fmt.Errorf("duplicate location name: %s", name)
		}
		if other, dup := seenOffsets[e.Offset]; dup {
			return nil, fmt.Errorf("offset %d used by both %s and %s", e.Offset, other, name)
		}
		if e.Offset < 0 || locationBlockStart+e.Offset >= FeatureVectorLength {
			return nil, fmt.Errorf("offset %d for %s is outside the feature vector", e.Offset, name)
		}
		seenOffsets[e.Offset] = name
		c.byName[name] = e.Offset
		c.entries = append(c.entries, LocationOffset{Name: name, Offset: e.Offset})
		c.names = append(c.names, name)
	}

	sort.Slice(c.entries, func(i, j int) bool { return c.entries[i].Offset < c.entries[j].Offset })
	sort.Strings(c.names)
	return c, nil
}

// Offset returns the offset registered for name.
func (c *LocationCatalog) Offset(name string) (int, bool) {
	off, ok := c.byName[name]
	return off, ok
}

// Names returns the location names sorted alphabetically.
func (c *LocationCatalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Entries returns all entries ordered by offset.
func (c *LocationCatalog) Entries() []LocationOffset {
	out := make([]LocationOffset, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *LocationCatalog) Len() int { return len(c.entries) }
