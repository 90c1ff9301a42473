package country

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
)

func named(names ...string) []Country {
	out := make([]Country, 0, len(names))
	for _, n := range names {
		out = append(out, Country{Name: Name{Common: n}})
	}
	return out
}

func commonNames(records []Country) []string {
	out := make([]string, 0, len(records))
	for _, c := range records {
		out = append(out, c.Name.Common)
	}
	return out
}

func TestSortedByName_CollatesNonASCII(t *testing.T) {
	in := named("Zambia", "Åland Islands", "Canada", "Côte d'Ivoire", "Curaçao", "Albania", "Chad")

	got := commonNames(SortedByName(in, language.English))
	want := []string{"Åland Islands", "Albania", "Canada", "Chad", "Côte d'Ivoire", "Curaçao", "Zambia"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("SortedByName mismatch (-want +got):\n%s", diff)
	}
}

func TestSortedByName_DoesNotMutateInput(t *testing.T) {
	in := named("Zambia", "Canada", "Brazil")
	before := commonNames(in)

	_ = SortedByName(in, language.English)

	if diff := cmp.Diff(before, commonNames(in)); diff != "" {
		t.Fatalf("input mutated (-before +after):\n%s", diff)
	}
}

func TestSortedByName_IsIdempotentPermutation(t *testing.T) {
	in := named("Peru", "Österreich", "Chile", "Oman", "Éire", "Egypt", "Chile")
	once := SortedByName(in, language.English)
	twice := SortedByName(once, language.English)

	if diff := cmp.Diff(commonNames(once), commonNames(twice)); diff != "" {
		t.Fatalf("sorting a sorted slice changed it (-once +twice):\n%s", diff)
	}

	counts := map[string]int{}
	for _, n := range commonNames(in) {
		counts[n]++
	}
	for _, n := range commonNames(once) {
		counts[n]--
	}
	for n, c := range counts {
		if c != 0 {
			t.Fatalf("name %q count off by %d, want a permutation", n, c)
		}
	}
}

func TestSortedByName_StableForEqualNames(t *testing.T) {
	in := []Country{
		{Name: Name{Common: "Congo"}, Code: "COG"},
		{Name: Name{Common: "Chad"}, Code: "TCD"},
		{Name: Name{Common: "Congo"}, Code: "COD"},
	}
	got := SortedByName(in, language.English)
	codes := []string{got[0].Code, got[1].Code, got[2].Code}
	if diff := cmp.Diff([]string{"TCD", "COG", "COD"}, codes); diff != "" {
		t.Fatalf("equal names reordered (-want +got):\n%s", diff)
	}
}

func TestSortedByName_Empty(t *testing.T) {
	if got := SortedByName(nil, language.English); len(got) != 0 {
		t.Fatalf("SortedByName(nil) = %v, want empty", got)
	}
}

func TestFindByCode(t *testing.T) {
	records := []Country{
		{Name: Name{Common: "Canada"}, Code: "CAN"},
		{Name: Name{Common: "First Dup"}, Code: "DUP"},
		{Name: Name{Common: "Second Dup"}, Code: "DUP"},
	}

	got, ok := FindByCode(records, "CAN")
	if !ok || got.Name.Common != "Canada" {
		t.Fatalf("FindByCode(CAN) = %v, %v; want Canada, true", got.Name.Common, ok)
	}

	got, ok = FindByCode(records, "DUP")
	if !ok || got.Name.Common != "First Dup" {
		t.Fatalf("FindByCode(DUP) = %v, %v; want first match", got.Name.Common, ok)
	}

	if _, ok := FindByCode(records, "can"); ok {
		t.Fatalf("FindByCode is case-sensitive, lowercase code should miss")
	}
	if _, ok := FindByCode(records, "XYZ"); ok {
		t.Fatalf("FindByCode(XYZ) found a record, want not-found")
	}
}

func TestResolve_DistinguishesLoadingFromNotFound(t *testing.T) {
	records := []Country{{Name: Name{Common: "Canada"}, Code: "CAN"}}

	tests := []struct {
		name   string
		loaded bool
		code   string
		want   Lookup
	}{
		{"found while loaded", true, "CAN", LookupFound},
		{"missing before load", false, "XYZ", LookupLoading},
		{"missing after load", true, "XYZ", LookupNotFound},
		{"blank code after load", true, "  ", LookupNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := Resolve(records, tt.loaded, tt.code)
			if got != tt.want {
				t.Fatalf("Resolve(%q, loaded=%v) = %v, want %v", tt.code, tt.loaded, got, tt.want)
			}
		})
	}
}

func TestKeyFallsBackToCommonName(t *testing.T) {
	if got := (Country{Name: Name{Common: "Kosovo"}}).Key(); got != "Kosovo" {
		t.Fatalf("Key = %q, want Kosovo", got)
	}
	if got := (Country{Name: Name{Common: "Canada"}, Code: "CAN"}).Key(); got != "CAN" {
		t.Fatalf("Key = %q, want CAN", got)
	}
}

func TestDisplayHelpers(t *testing.T) {
	c := Country{Name: Name{Common: "Canada"}, Population: 38000000, Capitals: []string{"Ottawa"}}
	if got := c.FormattedPopulation(); got != "38,000,000" {
		t.Fatalf("FormattedPopulation = %q, want 38,000,000", got)
	}
	if got := c.Capital(); got != "Ottawa" {
		t.Fatalf("Capital = %q, want Ottawa", got)
	}
	if got := c.FlagAlt(); got != "Canada flag" {
		t.Fatalf("FlagAlt = %q, want %q", got, "Canada flag")
	}

	noCapital := Country{Name: Name{Common: "Antarctica"}}
	if got := noCapital.Capital(); got != "N/A" {
		t.Fatalf("Capital = %q, want N/A", got)
	}
}

func TestNormalizeClampsPopulation(t *testing.T) {
	got := Normalize([]Country{{Population: -5, Code: " CAN "}})
	if got[0].Population != 0 || got[0].Code != "CAN" {
		t.Fatalf("Normalize = %+v, want population 0 and trimmed code", got[0])
	}
}

func TestEndToEndScenario(t *testing.T) {
	canada := Country{
		Code:       "CAN",
		Name:       Name{Common: "Canada"},
		Population: 38000000,
		Capitals:   []string{"Ottawa"},
		Region:     "Americas",
	}
	zambia := Country{Code: "ZMB", Name: Name{Common: "Zambia"}}

	got, lookup := Resolve([]Country{canada}, true, "CAN")
	if lookup != LookupFound {
		t.Fatalf("Resolve(CAN) = %v, want found", lookup)
	}
	if diff := cmp.Diff(canada, got); diff != "" {
		t.Fatalf("Resolve(CAN) mismatch (-want +got):\n%s", diff)
	}

	sorted := SortedByName([]Country{zambia, canada}, language.English)
	if sorted[0].Name.Common != "Canada" {
		t.Fatalf("sorted[0] = %q, want Canada", sorted[0].Name.Common)
	}
}

func TestParseLocale(t *testing.T) {
	if got := ParseLocale("sv"); got != language.Swedish {
		t.Fatalf("ParseLocale(sv) = %v, want sv", got)
	}
	if got := ParseLocale("not a tag!"); got != language.English {
		t.Fatalf("ParseLocale(invalid) = %v, want en", got)
	}
}
