// Package seed loads scraped official listings into the store.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/iliyamo/campus-housing/internal/model"
)

var logger = log.New("seed")

// Scraped is one record of the scraper output file.  Coordinates and
// distance that are missing or zero fall back to the campus defaults.
type Scraped struct {
	Title                   string             `json:"title"`
	Address                 string             `json:"address"`
	Latitude                *float64           `json:"latitude"`
	Longitude               *float64           `json:"longitude"`
	Rent                    int                `json:"rent"`
	Bedrooms                int                `json:"bedrooms"`
	Bathrooms               float64            `json:"bathrooms"`
	Neighborhood            model.Neighborhood `json:"neighborhood"`
	LeaseTerm               model.LeaseTerm    `json:"lease_term"`
	HeatingType             model.HeatingType  `json:"heating_type"`
	Description             *string            `json:"description"`
	URL                     string             `json:"url"`
	NearestTCATRoute        *string            `json:"nearest_tcat_route"`
	ElevationWarning        bool               `json:"elevation_warning"`
	DistanceFromCampusMiles *float64           `json:"distance_from_campus_miles"`
	Photos                  []string           `json:"photos"`
}

// Decode reads a JSON array of scraped listings.
func Decode(r io.Reader) ([]Scraped, error) {
	var out []Scraped
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("seed: decode: %w", err)
	}
	return out, nil
}

// Store is what a seed run writes to.
type Store interface {
	UpsertOfficial(ctx context.Context, l *model.Listing, runAt time.Time) error
	PruneStale(ctx context.Context, runAt time.Time) (int64, error)
}

// Result summarises a seed run.
type Result struct {
	Upserted int
	Errors   int
	Pruned   int64
	PruneErr error
}

// Run upserts every record keyed by url with the shared timestamp runAt and
// then removes official listings not seen in this run.  Per-record failures
// are counted and logged; a prune failure is reported in Result.PruneErr.
// The prune is skipped when ctx is cancelled mid-run so a partial run
// cannot delete listings it never reached.
func Run(ctx context.Context, store Store, scraped []Scraped, runAt time.Time) Result {
	var res Result
	logger.Infof("found %d listings to upsert", len(scraped))
	for i := range scraped {
		if ctx.Err() != nil {
			res.PruneErr = ctx.Err()
			return res
		}
		l, err := toListing(scraped[i])
		if err == nil {
			err = store.UpsertOfficial(ctx, l, runAt)
		}
		if err != nil {
			logger.Errorf("error upserting %q: %v", scraped[i].Title, err)
			res.Errors++
			continue
		}
		res.Upserted++
	}
	logger.Infof("upsert complete: upserted=%d errors=%d", res.Upserted, res.Errors)

	n, err := store.PruneStale(ctx, runAt)
	if err != nil {
		logger.Errorf("error pruning stale listings: %v", err)
		res.PruneErr = err
		return res
	}
	res.Pruned = n
	logger.Infof("pruned %d stale listings", n)
	return res
}

func toListing(s Scraped) (*model.Listing, error) {
	if s.URL == "" {
		return nil, fmt.Errorf("listing %q has no url", s.Title)
	}
	url := s.URL
	l := &model.Listing{
		Title:             s.Title,
		Address:           s.Address,
		Latitude:          orDefault(s.Latitude, model.DefaultLatitude),
		Longitude:         orDefault(s.Longitude, model.DefaultLongitude),
		Rent:              s.Rent,
		Bedrooms:          s.Bedrooms,
		Bathrooms:         s.Bathrooms,
		Neighborhood:      s.Neighborhood,
		LeaseTerm:         s.LeaseTerm,
		HeatingType:       s.HeatingType,
		NearestTCATRoute:  s.NearestTCATRoute,
		ElevationWarning:  s.ElevationWarning,
		IsOfficialListing: true,
		URL:               &url,
		Description:       s.Description,
		Photos:            s.Photos,
	}
	if l.Neighborhood != "" {
		n, ok := model.ParseNeighborhood(string(l.Neighborhood))
		if !ok {
			return nil, fmt.Errorf("listing %q: unknown neighborhood %q", s.Title, l.Neighborhood)
		}
		l.Neighborhood = n
	}
	if l.HeatingType != "" {
		h, ok := model.ParseHeatingType(string(l.HeatingType))
		if !ok {
			return nil, fmt.Errorf("listing %q: unknown heating type %q", s.Title, l.HeatingType)
		}
		l.HeatingType = h
	}
	dist := orDefault(s.DistanceFromCampusMiles, model.DefaultDistanceMiles)
	l.DistanceFromCampusMiles = &dist
	if l.Photos == nil {
		l.Photos = []string{}
	}
	return l, nil
}

func orDefault(v *float64, def float64) float64 {
	if v == nil || *v == 0 {
		return def
	}
	return *v
}
