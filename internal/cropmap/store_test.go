package cropmap

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// newTestStore builds an in-memory fields table with a few hand-placed
// square fields around 42N, 93W.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE fields (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			crop_type INTEGER NOT NULL,
			county TEXT,
			acres REAL NOT NULL DEFAULT 0,
			has_acres INTEGER NOT NULL DEFAULT 0,
			geometry TEXT NOT NULL,
			bbox_min_lat REAL NOT NULL,
			bbox_max_lat REAL NOT NULL,
			bbox_min_lon REAL NOT NULL,
			bbox_max_lon REAL NOT NULL
		)
	`)
	if err != nil {
		t.Fatalf("creating fields table: %v", err)
	}

	// Corn field: unit square from (42, -93) to (43, -92).
	// Soybean field: unit square from (40, -91) to (41, -90), no acreage.
	inserts := []struct {
		cropType               int
		county                 string
		acres                  float64
		hasAcres               int
		geometry               string
		minLat, maxLat         float64
		minLon, maxLon         float64
	}{
		{1, "19169", 152.3, 1, `[[-93,42],[-92,42],[-92,43],[-93,43],[-93,42]]`, 42, 43, -93, -92},
		{5, "19113", 0, 0, `[[-91,40],[-90,40],[-90,41],[-91,41],[-91,40]]`, 40, 41, -91, -90},
	}
	for _, in := range inserts {
		_, err := db.Exec(`
			INSERT INTO fields (crop_type, county, acres, has_acres, geometry,
				bbox_min_lat, bbox_max_lat, bbox_min_lon, bbox_max_lon)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, in.cropType, in.county, in.acres, in.hasAcres, in.geometry,
			in.minLat, in.maxLat, in.minLon, in.maxLon)
		if err != nil {
			t.Fatalf("inserting fixture field: %v", err)
		}
	}

	return NewStore(db)
}

func TestFieldAt_InsideField(t *testing.T) {
	store := newTestStore(t)

	props, err := store.FieldAt(42.5, -92.5)
	if err != nil {
		t.Fatalf("FieldAt() error = %v", err)
	}
	if props == nil {
		t.Fatal("FieldAt() = nil, want the corn field")
	}
	if props.CropType != 1 {
		t.Errorf("CropType = %d, want 1", props.CropType)
	}
	if props.County != "19169" {
		t.Errorf("County = %s, want 19169", props.County)
	}
	if !props.HasAcres || props.Acres != 152.3 {
		t.Errorf("Acres = %+v, want 152.3", props)
	}
}

func TestFieldAt_MissesAllGeometry(t *testing.T) {
	store := newTestStore(t)

	props, err := store.FieldAt(50, -100)
	if err != nil {
		t.Fatalf("FieldAt() error = %v", err)
	}
	if props != nil {
		t.Errorf("FieldAt() = %+v, want nil for empty map space", props)
	}
}

func TestFieldAt_InsideBBoxOutsideRing(t *testing.T) {
	store := newTestStore(t)

	// Triangle whose bbox covers the unit square but whose ring
	// excludes the far corner.
	_, err := store.db.Exec(`
		INSERT INTO fields (crop_type, county, acres, has_acres, geometry,
			bbox_min_lat, bbox_max_lat, bbox_min_lon, bbox_max_lon)
		VALUES (24, '20000', 0, 0, '[[-89,30],[-88,30],[-89,31],[-89,30]]', 30, 31, -89, -88)
	`)
	if err != nil {
		t.Fatalf("inserting triangle: %v", err)
	}

	// Inside bbox and ring.
	props, err := store.FieldAt(30.2, -88.9)
	if err != nil {
		t.Fatalf("FieldAt() error = %v", err)
	}
	if props == nil || props.CropType != 24 {
		t.Errorf("FieldAt(30.2, -88.9) = %+v, want the wheat triangle", props)
	}

	// Inside bbox, outside the hypotenuse.
	props, err = store.FieldAt(30.9, -88.1)
	if err != nil {
		t.Fatalf("FieldAt() error = %v", err)
	}
	if props != nil {
		t.Errorf("FieldAt(30.9, -88.1) = %+v, want nil outside the ring", props)
	}
}

func TestFieldAt_NoAcreage(t *testing.T) {
	store := newTestStore(t)

	props, err := store.FieldAt(40.5, -90.5)
	if err != nil {
		t.Fatalf("FieldAt() error = %v", err)
	}
	if props == nil {
		t.Fatal("FieldAt() = nil, want the soybean field")
	}
	if props.HasAcres {
		t.Errorf("HasAcres = true, want false")
	}
}

func TestFieldsInView(t *testing.T) {
	store := newTestStore(t)

	// Viewport covering only the corn field.
	features, err := store.FieldsInView(41.5, 43.5, -93.5, -91.5)
	if err != nil {
		t.Fatalf("FieldsInView() error = %v", err)
	}
	if len(features) != 1 {
		t.Fatalf("len(features) = %d, want 1", len(features))
	}
	if features[0].Props.CropType != 1 {
		t.Errorf("CropType = %d, want 1", features[0].Props.CropType)
	}

	// Viewport covering both.
	features, err = store.FieldsInView(39, 44, -94, -89)
	if err != nil {
		t.Fatalf("FieldsInView() error = %v", err)
	}
	if len(features) != 2 {
		t.Errorf("len(features) = %d, want 2", len(features))
	}

	// Viewport covering neither.
	features, err = store.FieldsInView(10, 11, 10, 11)
	if err != nil {
		t.Fatalf("FieldsInView() error = %v", err)
	}
	if len(features) != 0 {
		t.Errorf("len(features) = %d, want 0", len(features))
	}
}

func TestFeature_Contains(t *testing.T) {
	f := Feature{
		MinLat: 42, MaxLat: 43, MinLon: -93, MaxLon: -92,
		ring: []float64{-93, 42, -92, 42, -92, 43, -93, 43, -93, 42},
	}

	if !f.Contains(42.5, -92.5) {
		t.Error("Contains(42.5, -92.5) = false, want true")
	}
	if f.Contains(45, -92.5) {
		t.Error("Contains(45, -92.5) = true, want false")
	}
}
