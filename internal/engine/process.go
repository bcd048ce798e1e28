package engine

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"faraid-engine/internal/model"
)

// Process runs Process on an engine with default options.
func Process(req *model.CalculationRequest) *model.CalculationResponse {
	return defaultEngine.Process(req)
}

// Process wraps Compute in the calculation envelope: metadata, indexed
// messages and an outcome of SUCCESS, PARTIAL or FAILURE.
func (e *Engine) Process(req *model.CalculationRequest) *model.CalculationResponse {
	start := time.Now()

	dist, err := e.Compute(req.Heirs, req.Estate.NetValue)

	var allMessages []model.CalculationMessage
	outcome := model.OutcomeSuccess

	if dist != nil {
		for _, adj := range dist.Adjustments {
			code, text := model.CodeAwlApplied, "Fixed shares exceeded the estate and were reduced proportionally"
			if adj == "radd" {
				code, text = model.CodeRaddApplied, "Residue returned to fixed-share heirs"
			}
			allMessages = append(allMessages, model.CalculationMessage{
				Level:   model.LevelWarning,
				Code:    code,
				Message: text,
			})
		}
	}

	if err != nil {
		var ce *ComputationError
		if errors.As(err, &ce) {
			allMessages = append(allMessages, ce.Messages...)
			switch ce.Kind {
			case UnhandledConfiguration:
				outcome = model.OutcomePartial
			default:
				outcome = model.OutcomeFailure
			}
		} else {
			outcome = model.OutcomeFailure
		}
	}

	for i := range allMessages {
		allMessages[i].ID = i
	}
	if allMessages == nil {
		allMessages = []model.CalculationMessage{}
	}

	if outcome == model.OutcomeFailure {
		zap.L().Warn("engine: calculation failed",
			zap.String("reference", req.Reference),
			zap.Error(err),
		)
	}

	elapsed := time.Since(start)
	now := time.Now().UTC()

	return &model.CalculationResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          uuid.New().String(),
			Reference:              req.Reference,
			CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
			CalculationCompletedAt: now.Format(time.RFC3339),
			CalculationDurationMs:  elapsed.Milliseconds(),
			CalculationOutcome:     outcome,
		},
		CalculationResult: model.CalculationResult{
			Messages:     allMessages,
			Heirs:        req.Heirs,
			Estate:       req.Estate,
			Distribution: dist,
		},
	}
}
