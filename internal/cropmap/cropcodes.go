// Package cropmap provides the local field-boundary store and the
// translation from raw map features into typed field selections.
package cropmap

// cropNames maps USDA Cropland Data Layer land-cover codes to their
// human names. Codes missing here render as "Unknown", never an error.
var cropNames = map[int]string{
	1:   "Corn",
	2:   "Cotton",
	3:   "Rice",
	4:   "Sorghum",
	5:   "Soybeans",
	6:   "Sunflower",
	10:  "Peanuts",
	11:  "Tobacco",
	12:  "Sweet Corn",
	13:  "Popcorn",
	14:  "Mint",
	21:  "Barley",
	22:  "Durum Wheat",
	23:  "Spring Wheat",
	24:  "Winter Wheat",
	25:  "Other Small Grains",
	26:  "Winter Wheat/Soybeans",
	27:  "Rye",
	28:  "Oats",
	29:  "Millet",
	30:  "Speltz",
	31:  "Canola",
	32:  "Flaxseed",
	33:  "Safflower",
	34:  "Rape Seed",
	35:  "Mustard",
	36:  "Alfalfa",
	37:  "Other Hay",
	38:  "Camelina",
	39:  "Buckwheat",
	41:  "Sugarbeets",
	42:  "Dry Beans",
	43:  "Potatoes",
	44:  "Other Crops",
	45:  "Sugarcane",
	46:  "Sweet Potatoes",
	47:  "Misc Vegs & Fruits",
	48:  "Watermelons",
	49:  "Onions",
	50:  "Cucumbers",
	51:  "Chick Peas",
	52:  "Lentils",
	53:  "Peas",
	54:  "Tomatoes",
	55:  "Caneberries",
	56:  "Hops",
	57:  "Herbs",
	58:  "Clover/Wildflowers",
	59:  "Sod/Grass Seed",
	60:  "Switchgrass",
	61:  "Fallow/Idle Cropland",
	66:  "Cherries",
	67:  "Peaches",
	68:  "Apples",
	69:  "Grapes",
	70:  "Christmas Trees",
	71:  "Other Tree Crops",
	72:  "Citrus",
	74:  "Pecans",
	75:  "Almonds",
	76:  "Walnuts",
	77:  "Pears",
	111: "Open Water",
	121: "Developed/Open Space",
	122: "Developed/Low Intensity",
	123: "Developed/Med Intensity",
	124: "Developed/High Intensity",
	131: "Barren",
	141: "Deciduous Forest",
	142: "Evergreen Forest",
	143: "Mixed Forest",
	152: "Shrubland",
	176: "Grassland/Pasture",
	190: "Woody Wetlands",
	195: "Herbaceous Wetlands",
}

// CropName resolves a land-cover code to its human name.
func CropName(code int) string {
	if name, ok := cropNames[code]; ok {
		return name
	}
	return "Unknown"
}
