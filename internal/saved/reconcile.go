package saved

import (
	"go.uber.org/zap"

	"github.com/five82/atlas/internal/api"
	"github.com/five82/atlas/internal/country"
)

// Reconciliation is the saved list projected onto the catalog.
type Reconciliation struct {
	// Countries holds the matched records in server order.
	Countries []country.Country
	// Missing lists saved names with no catalog record. They are not displayed.
	Missing []string
	// Ambiguous lists saved names matching more than one catalog record. The
	// first match is displayed.
	Ambiguous []string
}

// Reconcile matches each entry to the catalog record whose common name is
// exactly equal. Case and diacritics are significant.
func Reconcile(entries []api.SavedCountry, catalog []country.Country) Reconciliation {
	byName := make(map[string][]int, len(catalog))
	for i, c := range catalog {
		byName[c.CommonName()] = append(byName[c.CommonName()], i)
	}

	var out Reconciliation
	for _, entry := range entries {
		matches := byName[entry.CountryName]
		switch {
		case len(matches) == 0:
			out.Missing = append(out.Missing, entry.CountryName)
			continue
		case len(matches) > 1:
			out.Ambiguous = append(out.Ambiguous, entry.CountryName)
		}
		out.Countries = append(out.Countries, catalog[matches[0]])
	}
	return out
}

// Log reports reconciliation misses. Nothing is shown to the user.
func (r Reconciliation) Log(logger *zap.Logger) {
	if logger == nil {
		return
	}
	for _, name := range r.Missing {
		logger.Warn("saved country not in catalog", zap.String("country_name", name))
	}
	for _, name := range r.Ambiguous {
		logger.Warn("saved country name is ambiguous", zap.String("country_name", name))
	}
}
