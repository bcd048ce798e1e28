package model

type CalculationMessage struct {
	ID      int    `json:"id"`
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
)

const (
	CodeConflictingSpouse    = "CONFLICTING_SPOUSE"
	CodeNegativeCount        = "NEGATIVE_COUNT"
	CodeNegativeEstate       = "NEGATIVE_ESTATE"
	CodeUndistributedResidue = "UNDISTRIBUTED_RESIDUE"
	CodeInvariantViolation   = "INVARIANT_VIOLATION"
	CodeAwlApplied           = "AWL_APPLIED"
	CodeRaddApplied          = "RADD_APPLIED"
)
