// Package agronomy derives texture class, health score and fertilizer
// recommendations from a normalized soil sample. All functions are pure
// and total: they never fail and perform no I/O.
package agronomy

import "github.com/croplens/crop-terminal/internal/models"

// ClassifyTexture buckets a soil sample by sand and clay percentages.
// The clay rule is checked before the sand rule; a sample with clay >= 40
// is Clay no matter how sandy it is.
func ClassifyTexture(sand, clay float64) models.TextureClass {
	if sand == 0 && clay == 0 {
		return models.TextureUnknown
	}
	if clay >= 40 {
		return models.TextureClay
	}
	if sand > 45 {
		return models.TextureSandyLoam
	}
	return models.TextureLoam
}
