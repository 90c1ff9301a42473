package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/five82/atlas/internal/country"
)

//go:embed snapshot.json
var snapshotJSON []byte

var bundled = sync.OnceValue(func() []country.Country {
	var records []country.Country
	if err := json.Unmarshal(snapshotJSON, &records); err != nil {
		panic(fmt.Sprintf("catalog: bundled snapshot is malformed: %v", err))
	}
	if len(records) == 0 {
		panic("catalog: bundled snapshot is empty")
	}
	return country.Normalize(records)
})

// Bundled returns a copy of the snapshot compiled into the binary.
func Bundled() []country.Country {
	src := bundled()
	out := make([]country.Country, len(src))
	copy(out, src)
	return out
}
