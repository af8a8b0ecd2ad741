package cropmap

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"

	"github.com/croplens/crop-terminal/internal/database"
)

// Feature is one field boundary loaded from the store: its typed
// attributes, bounding box and outer ring.
type Feature struct {
	Props  RawFeatureProperties
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64

	ring []float64 // flat lon/lat pairs for ring containment
}

// Contains reports whether the point lies inside the field boundary.
func (f *Feature) Contains(lat, lon float64) bool {
	if lat < f.MinLat || lat > f.MaxLat || lon < f.MinLon || lon > f.MaxLon {
		return false
	}
	return xy.IsPointInRing(geom.XY, geom.Coord{lon, lat}, f.ring)
}

// Store reads field boundaries from the local SQLite database.
type Store struct {
	db *sql.DB
}

// Open provisions the field database if needed and opens it.
func Open(dbPath string) (*Store, error) {
	if err := ProvisionDatabase(dbPath); err != nil {
		return nil, fmt.Errorf("provisioning field database: %w", err)
	}

	db, err := database.Open(dbPath)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// NewStore wraps an already-open database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// FieldAt finds the field containing the given point. Returns nil with
// no error when the point misses all field geometry: a click on empty
// map space is not a failure.
func (s *Store) FieldAt(lat, lon float64) (*RawFeatureProperties, error) {
	features, err := s.queryFeatures(`
		SELECT crop_type, county, acres, has_acres,
		       bbox_min_lat, bbox_max_lat, bbox_min_lon, bbox_max_lon, geometry
		FROM fields
		WHERE bbox_min_lat <= ? AND bbox_max_lat >= ?
		  AND bbox_min_lon <= ? AND bbox_max_lon >= ?
	`, lat, lat, lon, lon)
	if err != nil {
		return nil, err
	}

	for i := range features {
		if features[i].Contains(lat, lon) {
			props := features[i].Props
			return &props, nil
		}
	}
	return nil, nil
}

// FieldsInView returns every field whose bounding box intersects the
// viewport, for the map pane to rasterize.
func (s *Store) FieldsInView(minLat, maxLat, minLon, maxLon float64) ([]Feature, error) {
	return s.queryFeatures(`
		SELECT crop_type, county, acres, has_acres,
		       bbox_min_lat, bbox_max_lat, bbox_min_lon, bbox_max_lon, geometry
		FROM fields
		WHERE bbox_max_lat >= ? AND bbox_min_lat <= ?
		  AND bbox_max_lon >= ? AND bbox_min_lon <= ?
	`, minLat, maxLat, minLon, maxLon)
}

func (s *Store) queryFeatures(query string, args ...any) ([]Feature, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying fields: %w", err)
	}
	defer rows.Close()

	var features []Feature
	for rows.Next() {
		var f Feature
		var hasAcres int
		var geometry string

		if err := rows.Scan(&f.Props.CropType, &f.Props.County, &f.Props.Acres, &hasAcres,
			&f.MinLat, &f.MaxLat, &f.MinLon, &f.MaxLon, &geometry); err != nil {
			continue
		}
		f.Props.HasAcres = hasAcres != 0

		ring, err := decodeRing(geometry)
		if err != nil {
			continue
		}
		f.ring = ring

		features = append(features, f)
	}

	return features, rows.Err()
}

// decodeRing converts the stored JSON coordinate list into the flat
// lon/lat slice go-geom's ring predicates expect.
func decodeRing(geometry string) ([]float64, error) {
	var coords [][]float64
	if err := json.Unmarshal([]byte(geometry), &coords); err != nil {
		return nil, fmt.Errorf("decoding geometry: %w", err)
	}

	ring := make([]float64, 0, len(coords)*2)
	for _, c := range coords {
		if len(c) < 2 {
			return nil, fmt.Errorf("short coordinate pair")
		}
		ring = append(ring, c[0], c[1])
	}
	return ring, nil
}
