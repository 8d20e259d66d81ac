package domain

// ProductType is a product category in the catalog.
type ProductType string

// Product type constants.
const (
	TypeCleansingFoam     ProductType = "cleansing_foam"
	TypeCleansingOilWater ProductType = "cleansing_oil_water"
	TypeExfoliator        ProductType = "exfoliator_peeling"
	TypeToner             ProductType = "toner"
	TypeTonerPad          ProductType = "toner_pad"
	TypeEssence           ProductType = "essence"
	TypeSerum             ProductType = "serum"
	TypeAmpoule           ProductType = "ampoule"
	TypeLotionEmulsion    ProductType = "lotion_emulsion"
	TypeMoistureCream     ProductType = "moisture_cream"
	TypeEyeCream          ProductType = "eye_cream"
	TypeFaceOil           ProductType = "face_oil"
	TypeSheetMask         ProductType = "sheet_mask"
	TypeWashOffMask       ProductType = "wash_off_mask"
	TypeSunCare           ProductType = "sun_care"
	TypeLipCare           ProductType = "lip_care"
)

// ValidProductTypes returns the closed set of valid product types.
func ValidProductTypes() []ProductType {
	return []ProductType{
		TypeCleansingFoam, TypeCleansingOilWater, TypeExfoliator, TypeToner,
		TypeTonerPad, TypeEssence, TypeSerum, TypeAmpoule, TypeLotionEmulsion,
		TypeMoistureCream, TypeEyeCream, TypeFaceOil, TypeSheetMask,
		TypeWashOffMask, TypeSunCare, TypeLipCare,
	}
}

// IsValid checks whether the product type is one of the known values.
func (t ProductType) IsValid() bool {
	for _, v := range ValidProductTypes() {
		if t == v {
			return true
		}
	}
	return false
}

var productTypeLabels = map[ProductType]string{
	TypeCleansingFoam:     "cleansing foam",
	TypeCleansingOilWater: "cleansing oil/water",
	TypeExfoliator:        "exfoliator/peeling",
	TypeToner:             "toner",
	TypeTonerPad:          "toner pad",
	TypeEssence:           "essence",
	TypeSerum:             "serum",
	TypeAmpoule:           "ampoule",
	TypeLotionEmulsion:    "lotion/emulsion",
	TypeMoistureCream:     "moisture cream",
	TypeEyeCream:          "eye cream",
	TypeFaceOil:           "face oil",
	TypeSheetMask:         "sheet mask",
	TypeWashOffMask:       "wash-off mask",
	TypeSunCare:           "sun care",
	TypeLipCare:           "lip care",
}

// Label returns the human-readable label used in prompts and responses.
func (t ProductType) Label() string {
	if l, ok := productTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

// Product represents a product in the catalog. Products are loaded once at
// startup and never mutated.
type Product struct {
	ID              int64       `json:"product_id"`
	Name            string      `json:"product_name"`
	Slug            string      `json:"slug,omitempty"`
	Brand           string      `json:"brand"`
	Type            ProductType `json:"product_type"`
	Price           int64       `json:"price"`
	Stock           int         `json:"stock"`
	TargetSkinTypes SkinTypeSet `json:"target_skin_types"`
	TargetConcerns  ConcernSet  `json:"target_concerns"`
	Description     string      `json:"description,omitempty"`
}
