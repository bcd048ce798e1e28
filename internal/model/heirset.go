package model

import "fmt"

// HeirCategory identifies one class of relative. Every category's blocking,
// fixed-share and residuary behaviour is declared in the rules package.
type HeirCategory int

const (
	Husband HeirCategory = iota + 1
	Wife
	Father
	Mother
	Son
	Daughter
	Grandson
	Granddaughter
	Brother
	Sister
	Nephew
	Uncle
)

// Categories lists every category in display order.
var Categories = []HeirCategory{
	Husband, Wife, Father, Mother,
	Son, Daughter, Grandson, Granddaughter,
	Brother, Sister, Nephew, Uncle,
}

var categoryKeys = map[HeirCategory]string{
	Husband:       "husband",
	Wife:          "wife",
	Father:        "father",
	Mother:        "mother",
	Son:           "son",
	Daughter:      "daughter",
	Grandson:      "grandson",
	Granddaughter: "granddaughter",
	Brother:       "brother",
	Sister:        "sister",
	Nephew:        "nephew",
	Uncle:         "uncle",
}

var categoryLabels = map[HeirCategory]string{
	Husband:       "Husband",
	Wife:          "Wife",
	Father:        "Father",
	Mother:        "Mother",
	Son:           "Son",
	Daughter:      "Daughter",
	Grandson:      "Grandson (son's son)",
	Granddaughter: "Granddaughter (son's daughter)",
	Brother:       "Brother",
	Sister:        "Sister",
	Nephew:        "Nephew (brother's son)",
	Uncle:         "Paternal uncle",
}

// String returns the stable key used in JSON and patch paths.
func (c HeirCategory) String() string {
	if k, ok := categoryKeys[c]; ok {
		return k
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Label returns the human-readable heir label.
func (c HeirCategory) Label() string {
	return categoryLabels[c]
}

// MarshalText encodes the category as its key.
func (c HeirCategory) MarshalText() ([]byte, error) {
	if _, ok := categoryKeys[c]; !ok {
		return nil, fmt.Errorf("model: unknown heir category %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category key.
func (c *HeirCategory) UnmarshalText(b []byte) error {
	for cat, k := range categoryKeys {
		if k == string(b) {
			*c = cat
			return nil
		}
	}
	return fmt.Errorf("model: unknown heir category %q", string(b))
}

// HeirSet is the declared family composition for one estate.
//
// Only one spousal relation is recorded per decedent. Siblings are not
// differentiated into full, consanguine and uterine lines.
type HeirSet struct {
	HasSpouseHusband   bool `json:"has_spouse_husband"`
	HasSpouseWife      bool `json:"has_spouse_wife"`
	HasFather          bool `json:"has_father"`
	HasMother          bool `json:"has_mother"`
	SonCount           int  `json:"son_count"`
	DaughterCount      int  `json:"daughter_count"`
	GrandsonCount      int  `json:"grandson_count"`      // son's sons
	GranddaughterCount int  `json:"granddaughter_count"` // son's daughters
	BrotherCount       int  `json:"brother_count"`
	SisterCount        int  `json:"sister_count"`
	NephewCount        int  `json:"nephew_count"` // brother's sons
	UncleCount         int  `json:"uncle_count"`  // paternal uncles
}

// Count returns how many heirs of category c are present. Flags count as one.
func (h HeirSet) Count(c HeirCategory) int {
	switch c {
	case Husband:
		return boolCount(h.HasSpouseHusband)
	case Wife:
		return boolCount(h.HasSpouseWife)
	case Father:
		return boolCount(h.HasFather)
	case Mother:
		return boolCount(h.HasMother)
	case Son:
		return h.SonCount
	case Daughter:
		return h.DaughterCount
	case Grandson:
		return h.GrandsonCount
	case Granddaughter:
		return h.GranddaughterCount
	case Brother:
		return h.BrotherCount
	case Sister:
		return h.SisterCount
	case Nephew:
		return h.NephewCount
	case Uncle:
		return h.UncleCount
	}
	return 0
}

// Present reports whether at least one heir of category c exists.
func (h HeirSet) Present(c HeirCategory) bool {
	return h.Count(c) > 0
}

// HasDescendants reports whether any child or son's-line grandchild exists.
func (h HeirSet) HasDescendants() bool {
	return h.SonCount+h.DaughterCount+h.GrandsonCount+h.GranddaughterCount > 0
}

// HasMaleDescendants reports whether a son or son's son exists.
func (h HeirSet) HasMaleDescendants() bool {
	return h.SonCount+h.GrandsonCount > 0
}

// HasFemaleDescendants reports whether a daughter or son's daughter exists.
func (h HeirSet) HasFemaleDescendants() bool {
	return h.DaughterCount+h.GranddaughterCount > 0
}

// SiblingCount returns brothers plus sisters, blocked or not.
func (h HeirSet) SiblingCount() int {
	return h.BrotherCount + h.SisterCount
}

// Validate checks the structural invariants of the heir set.
// It returns one CRITICAL message per violation, nil when the set is valid.
func (h HeirSet) Validate() []CalculationMessage {
	var msgs []CalculationMessage

	if h.HasSpouseHusband && h.HasSpouseWife {
		msgs = append(msgs, CalculationMessage{
			Level:   LevelCritical,
			Code:    CodeConflictingSpouse,
			Message: "Husband and wife cannot both be recorded for one decedent",
		})
	}

	for _, c := range Categories {
		if n := h.Count(c); n < 0 {
			msgs = append(msgs, CalculationMessage{
				Level:   LevelCritical,
				Code:    CodeNegativeCount,
				Message: fmt.Sprintf("Count for %s must be non-negative, got %d", c, n),
			})
		}
	}

	return msgs
}

func boolCount(b bool) int {
	if b {
		return 1
	}
	return 0
}
