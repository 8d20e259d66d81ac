package domain

// SkinType is a customer's base skin type.
type SkinType string

// Skin type constants.
const (
	SkinDry            SkinType = "dry"
	SkinNormal         SkinType = "normal"
	SkinOily           SkinType = "oily"
	SkinCombination    SkinType = "combination"
	SkinDehydratedOily SkinType = "dehydrated_oily"
)

// ValidSkinTypes returns the closed set of valid skin types.
func ValidSkinTypes() []SkinType {
	return []SkinType{SkinDry, SkinNormal, SkinOily, SkinCombination, SkinDehydratedOily}
}

// IsValid checks whether the skin type is one of the known values.
func (s SkinType) IsValid() bool {
	for _, v := range ValidSkinTypes() {
		if s == v {
			return true
		}
	}
	return false
}

var skinTypeLabels = map[SkinType]string{
	SkinDry:            "dry",
	SkinNormal:         "normal",
	SkinOily:           "oily",
	SkinCombination:    "combination",
	SkinDehydratedOily: "dehydrated oily",
}

// Label returns the human-readable label used in prompts and responses.
func (s SkinType) Label() string {
	if l, ok := skinTypeLabels[s]; ok {
		return l
	}
	return string(s)
}

// Concern is a skin concern a customer has or a product targets.
type Concern string

// Skin concern constants.
const (
	ConcernAcne         Concern = "acne_trouble"
	ConcernPores        Concern = "pores"
	ConcernWrinkles     Concern = "wrinkles_aging"
	ConcernPigmentation Concern = "pigmentation_blemish"
	ConcernRedness      Concern = "redness"
	ConcernDryness      Concern = "severe_dryness"
	ConcernDullness     Concern = "dullness"
)

// ValidConcerns returns the closed set of valid skin concerns.
func ValidConcerns() []Concern {
	return []Concern{
		ConcernAcne, ConcernPores, ConcernWrinkles, ConcernPigmentation,
		ConcernRedness, ConcernDryness, ConcernDullness,
	}
}

// IsValid checks whether the concern is one of the known values.
func (c Concern) IsValid() bool {
	for _, v := range ValidConcerns() {
		if c == v {
			return true
		}
	}
	return false
}

var concernLabels = map[Concern]string{
	ConcernAcne:         "acne & breakouts",
	ConcernPores:        "enlarged pores",
	ConcernWrinkles:     "wrinkles & aging",
	ConcernPigmentation: "pigmentation & blemishes",
	ConcernRedness:      "redness",
	ConcernDryness:      "severe dryness",
	ConcernDullness:     "dullness",
}

// Label returns the human-readable label used in prompts and responses.
func (c Concern) Label() string {
	if l, ok := concernLabels[c]; ok {
		return l
	}
	return string(c)
}

// ConcernLabels maps a concern set to its display labels, preserving order.
func ConcernLabels(concerns []Concern) []string {
	labels := make([]string, 0, len(concerns))
	for _, c := range concerns {
		labels = append(labels, c.Label())
	}
	return labels
}
