package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/five82/atlas/internal/catalog"
	"github.com/five82/atlas/internal/country"
)

func dataset() catalog.Dataset {
	return catalog.Dataset{Countries: []country.Country{
		{Code: "ZMB", Name: country.Name{Common: "Zambia"}},
		{Code: "CAN", Name: country.Name{Common: "Canada"}, Population: 38000000, Capitals: []string{"Ottawa"}, Region: "Americas"},
	}}
}

func TestStore_UpdateSortsAndSnapshotClones(t *testing.T) {
	var s Store

	before := time.Now()
	s.Update(dataset(), language.English)

	snap := s.Snapshot()
	if !snap.Loaded || snap.Degraded {
		t.Fatalf("snapshot = loaded %v degraded %v, want loaded and healthy", snap.Loaded, snap.Degraded)
	}
	if len(snap.Countries) != 2 || snap.Countries[0].Code != "CAN" {
		t.Fatalf("snapshot countries = %#v, want Canada first", snap.Countries)
	}
	if snap.LoadedAt.Before(before) {
		t.Fatalf("LoadedAt = %v, want >= %v", snap.LoadedAt, before)
	}
	if snap.Advisory() != "" {
		t.Fatalf("Advisory = %q, want empty", snap.Advisory())
	}

	// Returned snapshot should be independent of the stored one.
	snap.Countries[0].Code = "XXX"
	snap2 := s.Snapshot()
	if snap2.Countries[0].Code != "CAN" {
		t.Fatalf("Snapshot should clone countries; got %q want CAN", snap2.Countries[0].Code)
	}
}

func TestStore_DegradedCarriesErrorAndAdvisory(t *testing.T) {
	var s Store

	origErr := errors.New("boom")
	ds := dataset()
	ds.Degraded = true
	ds.Err = origErr
	s.Update(ds, language.English)

	snap := s.Snapshot()
	if snap.Advisory() != catalog.Advisory {
		t.Fatalf("Advisory = %q, want %q", snap.Advisory(), catalog.Advisory)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestSnapshot_ResolveDistinguishesLoadingFromNotFound(t *testing.T) {
	var s Store

	if _, lookup := s.Snapshot().Resolve("CAN"); lookup != country.LookupLoading {
		t.Fatalf("lookup before load = %v, want loading", lookup)
	}

	s.Update(dataset(), language.English)
	snap := s.Snapshot()
	if c, lookup := snap.Resolve("CAN"); lookup != country.LookupFound || c.Name.Common != "Canada" {
		t.Fatalf("Resolve(CAN) = %+v %v, want Canada found", c, lookup)
	}
	if _, lookup := snap.Resolve("XYZ"); lookup != country.LookupNotFound {
		t.Fatalf("lookup of unknown code = %v, want not found", lookup)
	}
}

func TestStore_UpdateCollatesByLocale(t *testing.T) {
	ds := catalog.Dataset{Countries: []country.Country{
		{Code: "CHL", Name: country.Name{Common: "Chile"}},
		{Code: "CZE", Name: country.Name{Common: "Czechia"}},
		{Code: "CYP", Name: country.Name{Common: "Cyprus"}},
	}}

	var english Store
	english.Update(ds, language.English)
	if got := english.Snapshot().Countries[0].Code; got != "CHL" {
		t.Fatalf("english first = %q, want CHL", got)
	}

	// Slovak collates "ch" after "h", so Chile moves to the end.
	var s Store
	s.Update(ds, language.Slovak)
	snap := s.Snapshot()
	if got := snap.Countries[len(snap.Countries)-1].Code; got != "CHL" {
		t.Fatalf("slovak last = %q, want CHL", got)
	}
}
