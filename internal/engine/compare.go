package engine

import (
	"github.com/rotisserie/eris"

	"faraid-engine/internal/jsonpatch"
	"faraid-engine/internal/model"
)

// Compare runs Compare on an engine with default options.
func Compare(req *model.CompareRequest) (*model.CompareResponse, error) {
	return defaultEngine.Compare(req)
}

// Compare computes the baseline and scenario heir sets against the same
// estate and reports how the distribution changes between them.
func (e *Engine) Compare(req *model.CompareRequest) (*model.CompareResponse, error) {
	baseline := e.Process(&model.CalculationRequest{
		Reference: req.Reference,
		Heirs:     req.Baseline,
		Estate:    req.Estate,
	})
	scenario := e.Process(&model.CalculationRequest{
		Reference: req.Reference,
		Heirs:     req.Scenario,
		Estate:    req.Estate,
	})

	changes, err := jsonpatch.Diff(
		baseline.CalculationResult.Distribution,
		scenario.CalculationResult.Distribution,
	)
	if err != nil {
		return nil, eris.Wrap(err, "engine: diff distributions")
	}

	return &model.CompareResponse{
		Baseline: *baseline,
		Scenario: *scenario,
		Changes:  changes,
	}, nil
}
