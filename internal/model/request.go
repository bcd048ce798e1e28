package model

type CalculationRequest struct {
	Reference string  `json:"reference,omitempty"`
	Heirs     HeirSet `json:"heirs"`
	Estate    Estate  `json:"estate"`
}

type CompareRequest struct {
	Reference string  `json:"reference,omitempty"`
	Estate    Estate  `json:"estate"`
	Baseline  HeirSet `json:"baseline"`
	Scenario  HeirSet `json:"scenario"`
}
