// Package fallback bundles a static listing snapshot served when the
// primary store cannot answer a search.
package fallback

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/iliyamo/campus-housing/internal/model"
)

//go:embed listings.json
var snapshotJSON []byte

var (
	once     sync.Once
	snapshot []model.Listing
	parseErr error
)

// Snapshot returns a copy of the bundled listings.  The JSON is decoded once
// per process.
func Snapshot() ([]model.Listing, error) {
	once.Do(func() {
		parseErr = json.Unmarshal(snapshotJSON, &snapshot)
		if parseErr != nil {
			parseErr = fmt.Errorf("fallback: decode snapshot: %w", parseErr)
		}
	})
	if parseErr != nil {
		return nil, parseErr
	}
	out := make([]model.Listing, len(snapshot))
	copy(out, snapshot)
	return out, nil
}
