package agronomy

import (
	"fmt"

	"github.com/croplens/crop-terminal/internal/models"
)

// PlanFertilizer builds an ordered fertilizer plan from a soil sample.
// Evaluation order is fixed: the nitrogen check runs before the pH
// check, and the returned slice preserves that order. A nil sample
// yields an empty plan.
func PlanFertilizer(soil *models.SoilSample) []models.FertilizerRecommendation {
	if soil == nil {
		return nil
	}

	var plan []models.FertilizerRecommendation

	if soil.Nitrogen < 2.0 {
		plan = append(plan, models.FertilizerRecommendation{
			Nutrient:    "Nitrogen",
			Priority:    models.PriorityHigh,
			AmountRange: "80-100 lbs/ac",
			Fertilizer:  "Urea (46-0-0)",
			Current:     fmt.Sprintf("%.1f", soil.Nitrogen),
			Target:      "3.5",
			Timing:      "Split application at planting",
		})
	}

	// Only a present, positive pH can trigger the lime recommendation;
	// a zeroed-out absent value must not read as extreme acidity.
	if soil.PH > 0 && soil.PH < 6.0 {
		plan = append(plan, models.FertilizerRecommendation{
			Nutrient:    "pH",
			Priority:    models.PriorityHigh,
			AmountRange: "2-3 tons/ac",
			Fertilizer:  "Ag Limestone",
			Current:     fmt.Sprintf("%.1f", soil.PH),
			Target:      "6.5",
			Timing:      "Fall application",
		})
	}

	return plan
}
