package cropmap

import (
	"fmt"

	"github.com/croplens/crop-terminal/internal/models"
)

// RawFeatureProperties is the typed boundary for the untyped attribute
// payload a field feature carries. Conversion and validation happen
// here, never downstream.
type RawFeatureProperties struct {
	CropType int
	County   string
	Acres    float64
	HasAcres bool
}

// Selection turns a clicked feature into a FieldSelection. The crop
// code resolves through the static land-cover table; coordinates are
// range-checked so an invalid viewport mapping cannot leak into state.
func (p RawFeatureProperties) Selection(lat, lon float64) (*models.FieldSelection, error) {
	if lat < -90 || lat > 90 {
		return nil, fmt.Errorf("latitude %f out of range", lat)
	}
	if lon < -180 || lon > 180 {
		return nil, fmt.Errorf("longitude %f out of range", lon)
	}

	return &models.FieldSelection{
		Latitude:  lat,
		Longitude: lon,
		CropCode:  p.CropType,
		CropName:  CropName(p.CropType),
		CountyID:  p.County,
		Acres:     p.Acres,
		HasAcres:  p.HasAcres,
	}, nil
}
