package country

import (
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Name mirrors the name object of the catalog payload.
type Name struct {
	Common   string `json:"common"`
	Official string `json:"official"`
}

// Flags mirrors the flags object of the catalog payload.
type Flags struct {
	PNG string `json:"png"`
	SVG string `json:"svg"`
	Alt string `json:"alt"`
}

// Country is one catalog record. Records are read-only once loaded.
type Country struct {
	Name       Name     `json:"name"`
	Flags      Flags    `json:"flags"`
	Population int64    `json:"population"`
	Capitals   []string `json:"capital"`
	Region     string   `json:"region"`
	Code       string   `json:"cca3"`
	Borders    []string `json:"borders"`
}

// CommonName returns the display name.
func (c Country) CommonName() string {
	return c.Name.Common
}

// Key returns the code, or the common name when the record has no code.
func (c Country) Key() string {
	if code := strings.TrimSpace(c.Code); code != "" {
		return code
	}
	return c.Name.Common
}

// Capital returns the first capital or "N/A".
func (c Country) Capital() string {
	for _, capital := range c.Capitals {
		if strings.TrimSpace(capital) != "" {
			return capital
		}
	}
	return "N/A"
}

// FlagAlt returns the alt text of the flag, falling back to "<name> flag".
func (c Country) FlagAlt() string {
	if alt := strings.TrimSpace(c.Flags.Alt); alt != "" {
		return alt
	}
	return c.Name.Common + " flag"
}

// FormattedPopulation renders the population with thousands separators.
func (c Country) FormattedPopulation() string {
	return humanize.Comma(c.Population)
}

// Normalize clamps fields the UI relies on. Negative populations become zero.
func Normalize(records []Country) []Country {
	for i := range records {
		if records[i].Population < 0 {
			records[i].Population = 0
		}
		records[i].Code = strings.TrimSpace(records[i].Code)
	}
	return records
}

// SortedByName returns a copy of records ordered by common name using the
// collation rules of tag. Equal names keep their input order.
func SortedByName(records []Country, tag language.Tag) []Country {
	out := make([]Country, len(records))
	copy(out, records)
	col := collate.New(tag)
	sort.SliceStable(out, func(i, j int) bool {
		return col.CompareString(out[i].Name.Common, out[j].Name.Common) < 0
	})
	return out
}

// FindByCode returns the first record whose code equals code exactly.
func FindByCode(records []Country, code string) (Country, bool) {
	for _, c := range records {
		if c.Code == code {
			return c, true
		}
	}
	return Country{}, false
}

// Lookup describes the outcome of resolving a code against the catalog.
type Lookup int

const (
	LookupLoading Lookup = iota
	LookupFound
	LookupNotFound
)

func (l Lookup) String() string {
	switch l {
	case LookupFound:
		return "found"
	case LookupNotFound:
		return "not found"
	default:
		return "loading"
	}
}

// Resolve looks code up in records. A miss before the catalog has loaded is
// reported as LookupLoading; a miss afterwards is LookupNotFound.
func Resolve(records []Country, loaded bool, code string) (Country, Lookup) {
	code = strings.TrimSpace(code)
	if code != "" {
		if c, ok := FindByCode(records, code); ok {
			return c, LookupFound
		}
	}
	if !loaded {
		return Country{}, LookupLoading
	}
	return Country{}, LookupNotFound
}

// ParseLocale parses a BCP 47 tag, falling back to English.
func ParseLocale(tag string) language.Tag {
	parsed, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return language.English
	}
	return parsed
}
