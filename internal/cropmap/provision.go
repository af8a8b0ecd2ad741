package cropmap

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jonas-p/go-shp"
	"go.uber.org/zap"

	"github.com/croplens/crop-terminal/internal/database"
)

const (
	// USDA Crop Sequence Boundaries shapefile (updated yearly)
	fieldBoundariesURL = "https://www.nass.usda.gov/Research_and_Science/Crop-Sequence-Boundaries/datasets/CSB2024.zip"
	shapefileBase      = "CSB2024"
)

// NeedsProvisioning reports whether the fields table has not been
// built yet.
func NeedsProvisioning(dbPath string) (bool, error) {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return true, nil
	}

	db, err := database.Open(dbPath)
	if err != nil {
		return false, err
	}
	defer db.Close()

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='fields'").Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking for fields table: %w", err)
	}
	return count == 0, nil
}

// ProvisionDatabase checks if the fields table exists and builds it
// from the USDA boundary shapefile if not.
func ProvisionDatabase(dbPath string) error {
	dataDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	db, err := database.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='fields'").Scan(&count)
	if err != nil {
		return fmt.Errorf("checking for fields table: %w", err)
	}
	if count > 0 {
		return nil // Table already exists
	}

	zap.L().Info("fields table not found, provisioning", zap.String("db", dbPath))

	zipPath := filepath.Join(dataDir, shapefileBase+".zip")
	zap.L().Info("downloading field boundaries", zap.String("url", fieldBoundariesURL))
	if err := downloadFile(zipPath, fieldBoundariesURL); err != nil {
		return fmt.Errorf("downloading shapefile: %w", err)
	}
	defer os.Remove(zipPath) // Clean up zip file after extraction

	if err := unzipFile(zipPath, dataDir); err != nil {
		return fmt.Errorf("extracting shapefile: %w", err)
	}

	shapefilePath := filepath.Join(dataDir, shapefileBase+".shp")
	if err := buildDatabase(shapefilePath, dbPath); err != nil {
		return fmt.Errorf("building database: %w", err)
	}

	cleanupShapefiles(dataDir, shapefileBase)

	zap.L().Info("field database provisioned", zap.String("db", dbPath))
	return nil
}

// downloadFile fetches a URL to a local path, retrying transient
// failures with exponential backoff. Client errors are permanent.
func downloadFile(filepath string, url string) error {
	operation := func() error {
		resp, err := http.Get(url)
		if err != nil {
			return fmt.Errorf("fetching %s: %w", url, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return backoff.Permanent(fmt.Errorf("bad status: %s", resp.Status))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("bad status: %s", resp.Status)
		}

		out, err := os.Create(filepath)
		if err != nil {
			return backoff.Permanent(err)
		}
		defer out.Close()

		_, err = io.Copy(out, resp.Body)
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 5 * time.Minute
	return backoff.Retry(operation, bo)
}

// unzipFile extracts a zip archive into dest. Entries that would land
// outside dest are rejected.
func unzipFile(src, dest string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return err
	}
	defer r.Close()

	dest = filepath.Clean(dest)
	for _, f := range r.File {
		target := filepath.Join(dest, f.Name)

		rel, err := filepath.Rel(dest, target)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry escapes destination: %s", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, os.ModePerm); err != nil {
				return err
			}
			continue
		}
		if err := extractZipEntry(f, target); err != nil {
			return fmt.Errorf("extracting %s: %w", f.Name, err)
		}
	}
	return nil
}

func extractZipEntry(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, rc)
	return err
}

// buildDatabase creates the fields table from the boundary shapefile.
func buildDatabase(shapefilePath, dbPath string) error {
	shape, err := shp.Open(shapefilePath)
	if err != nil {
		return fmt.Errorf("opening shapefile: %w", err)
	}
	defer shape.Close()

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

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
		);

		CREATE INDEX idx_fields_bbox ON fields(
			bbox_min_lat, bbox_max_lat, bbox_min_lon, bbox_max_lon
		);

		CREATE INDEX idx_fields_crop ON fields(crop_type);
	`)
	if err != nil {
		return fmt.Errorf("creating table: %w", err)
	}

	// Resolve DBF attribute columns by name; the CSB layout has
	// shifted positions between releases.
	cropIdx, cntyIdx, acresIdx := -1, -1, -1
	for i, field := range shape.Fields() {
		switch strings.ToUpper(field.String()) {
		case "CROP_TYPE":
			cropIdx = i
		case "CNTY":
			cntyIdx = i
		case "CSBACRES":
			acresIdx = i
		}
	}
	if cropIdx == -1 {
		return fmt.Errorf("shapefile has no CROP_TYPE attribute")
	}

	count := 0
	for shape.Next() {
		n, p := shape.Shape()

		polygon, ok := p.(*shp.Polygon)
		if !ok || len(polygon.Parts) == 0 || len(polygon.Points) == 0 {
			continue
		}

		cropType, err := strconv.Atoi(strings.TrimSpace(shape.ReadAttribute(n, cropIdx)))
		if err != nil {
			continue
		}

		county := ""
		if cntyIdx != -1 {
			county = strings.TrimSpace(shape.ReadAttribute(n, cntyIdx))
		}

		acres, hasAcres := 0.0, 0
		if acresIdx != -1 {
			if v, err := strconv.ParseFloat(strings.TrimSpace(shape.ReadAttribute(n, acresIdx)), 64); err == nil {
				acres, hasAcres = v, 1
			}
		}

		bbox := polygon.BBox()

		geometryJSON, err := json.Marshal(largestRing(polygon))
		if err != nil {
			zap.L().Warn("skipping field with bad geometry", zap.Int("row", n), zap.Error(err))
			continue
		}

		_, err = db.Exec(`
			INSERT INTO fields (
				crop_type, county, acres, has_acres, geometry,
				bbox_min_lat, bbox_max_lat, bbox_min_lon, bbox_max_lon
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, cropType, county, acres, hasAcres, string(geometryJSON),
			bbox.MinY, bbox.MaxY, bbox.MinX, bbox.MaxX)

		if err != nil {
			zap.L().Warn("skipping field insert", zap.Int("row", n), zap.Error(err))
			continue
		}

		count++
		if count%10000 == 0 {
			zap.L().Info("provisioning progress", zap.Int("fields", count))
		}
	}

	zap.L().Info("field table built", zap.Int("fields", count))
	return nil
}

// largestRing extracts the biggest part of a multi-part polygon, which
// is the outer boundary for CSB features.
func largestRing(polygon *shp.Polygon) [][]float64 {
	largestIdx, largestSize := 0, 0
	for partIdx := 0; partIdx < len(polygon.Parts); partIdx++ {
		startIdx := int(polygon.Parts[partIdx])
		endIdx := len(polygon.Points)
		if partIdx+1 < len(polygon.Parts) {
			endIdx = int(polygon.Parts[partIdx+1])
		}
		if endIdx-startIdx > largestSize {
			largestSize = endIdx - startIdx
			largestIdx = partIdx
		}
	}

	startIdx := int(polygon.Parts[largestIdx])
	endIdx := len(polygon.Points)
	if largestIdx+1 < len(polygon.Parts) {
		endIdx = int(polygon.Parts[largestIdx+1])
	}

	coords := make([][]float64, 0, endIdx-startIdx)
	for i := startIdx; i < endIdx; i++ {
		point := polygon.Points[i]
		coords = append(coords, []float64{point.X, point.Y})
	}
	return coords
}

// cleanupShapefiles removes the extracted shapefile components
func cleanupShapefiles(dir, base string) {
	extensions := []string{".shp", ".shx", ".dbf", ".prj", ".cpg", ".shp.xml"}
	for _, ext := range extensions {
		path := filepath.Join(dir, base+ext)
		os.Remove(path) // Ignore errors
	}
}
