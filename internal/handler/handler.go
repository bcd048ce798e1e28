package handler

import (
	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"faraid-engine/internal/engine"
	"faraid-engine/internal/model"
)

// Handler serves the calculation endpoints over fasthttp.
type Handler struct {
	engine *engine.Engine
}

func New(eng *engine.Engine) *Handler {
	return &Handler{engine: eng}
}

// Serve routes a request to its endpoint.
func (h *Handler) Serve(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/calculate":
		if !requireMethod(ctx, fasthttp.MethodPost) {
			return
		}
		h.HandleCalculation(ctx)
	case "/compare":
		if !requireMethod(ctx, fasthttp.MethodPost) {
			return
		}
		h.HandleCompare(ctx)
	case "/healthz":
		if !requireMethod(ctx, fasthttp.MethodGet) {
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (h *Handler) HandleCalculation(ctx *fasthttp.RequestCtx) {
	var req model.CalculationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resp := h.engine.Process(&req)

	status := fasthttp.StatusOK
	if resp.CalculationMetadata.CalculationOutcome == model.OutcomeFailure {
		status = fasthttp.StatusUnprocessableEntity
		logFailure(resp)
	}
	writeJSON(ctx, status, resp)
}

func (h *Handler) HandleCompare(ctx *fasthttp.RequestCtx) {
	var req model.CompareRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.engine.Compare(&req)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "Failed to compare distributions: "+err.Error())
		return
	}
	logFailure(&resp.Baseline)
	logFailure(&resp.Scenario)
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

// logFailure reports invariant violations loudly: they point at a rule-table
// defect rather than bad input.
func logFailure(resp *model.CalculationResponse) {
	for _, m := range resp.CalculationResult.Messages {
		if m.Code == model.CodeInvariantViolation {
			zap.L().Error("handler: invariant violation",
				zap.String("calculation_id", resp.CalculationMetadata.CalculationID),
				zap.String("message", m.Message),
			)
		}
	}
}

func requireMethod(ctx *fasthttp.RequestCtx, method string) bool {
	if string(ctx.Method()) != method {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return false
	}
	return true
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		zap.L().Error("handler: encode response", zap.Error(err))
		ctx.Error("internal error", fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	zap.L().Warn("handler: request rejected",
		zap.Int("status", status),
		zap.String("path", string(ctx.Path())),
		zap.String("message", message),
	)
	writeJSON(ctx, status, model.ErrorResponse{
		Status:  status,
		Message: message,
	})
}
