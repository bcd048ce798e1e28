package handler

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"faraid-engine/internal/engine"
	"faraid-engine/internal/model"
)

func do(t *testing.T, method, path, body string) *fasthttp.RequestCtx {
	t.Helper()
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	if body != "" {
		ctx.Request.SetBodyString(body)
		ctx.Request.Header.SetContentType("application/json")
	}
	New(engine.New(engine.DefaultOptions())).Serve(&ctx)
	return &ctx
}

func TestCalculate(t *testing.T) {
	ctx := do(t, fasthttp.MethodPost, "/calculate", `{
		"reference": "case-7",
		"heirs": {"brother_count": 2, "sister_count": 1},
		"estate": {"net_value": "300000", "currency": "IDR"}
	}`)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))

	var resp model.CalculationResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, model.OutcomeSuccess, resp.CalculationMetadata.CalculationOutcome)
	assert.Equal(t, "case-7", resp.CalculationMetadata.Reference)

	dist := resp.CalculationResult.Distribution
	require.NotNil(t, dist)
	require.Len(t, dist.Shares, 2)
	assert.Equal(t, model.Brother, dist.Shares[0].Category)
	assert.Equal(t, "120000", dist.Shares[0].PerHeir.String())
	assert.Equal(t, model.Sister, dist.Shares[1].Category)
	assert.Equal(t, "60000", dist.Shares[1].Amount.String())
}

func TestCalculateAcceptsNumericEstate(t *testing.T) {
	ctx := do(t, fasthttp.MethodPost, "/calculate", `{"heirs": {"son_count": 1}, "estate": {"net_value": 1000}}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
}

func TestCalculatePartial(t *testing.T) {
	ctx := do(t, fasthttp.MethodPost, "/calculate", `{
		"heirs": {"has_spouse_husband": true, "has_mother": true},
		"estate": {"net_value": "600000"}
	}`)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp model.CalculationResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, model.OutcomePartial, resp.CalculationMetadata.CalculationOutcome)
	require.Len(t, resp.CalculationResult.Messages, 1)
	assert.Equal(t, model.CodeUndistributedResidue, resp.CalculationResult.Messages[0].Code)
	assert.Equal(t, "100000", resp.CalculationResult.Distribution.Undistributed.String())
}

func TestCalculateInvalidInput(t *testing.T) {
	ctx := do(t, fasthttp.MethodPost, "/calculate", `{
		"heirs": {"has_spouse_husband": true, "has_spouse_wife": true},
		"estate": {"net_value": "100"}
	}`)

	require.Equal(t, fasthttp.StatusUnprocessableEntity, ctx.Response.StatusCode())

	var resp model.CalculationResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, model.OutcomeFailure, resp.CalculationMetadata.CalculationOutcome)
	assert.Nil(t, resp.CalculationResult.Distribution)
}

func TestCalculateInvariantViolation(t *testing.T) {
	ctx := do(t, fasthttp.MethodPost, "/calculate", `{
		"heirs": {"has_spouse_husband": true, "sister_count": 2},
		"estate": {"net_value": "600"}
	}`)

	require.Equal(t, fasthttp.StatusUnprocessableEntity, ctx.Response.StatusCode())

	var resp model.CalculationResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	require.Len(t, resp.CalculationResult.Messages, 1)
	assert.Equal(t, model.CodeInvariantViolation, resp.CalculationResult.Messages[0].Code)
}

func TestCalculateMalformedBody(t *testing.T) {
	ctx := do(t, fasthttp.MethodPost, "/calculate", `{"heirs": `)

	require.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, fasthttp.StatusBadRequest, resp.Status)
	assert.Contains(t, resp.Message, "Invalid request body")
}

func TestCompare(t *testing.T) {
	ctx := do(t, fasthttp.MethodPost, "/compare", `{
		"estate": {"net_value": "1000"},
		"baseline": {"has_father": true},
		"scenario": {"has_father": true, "son_count": 1}
	}`)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp model.CompareResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	require.NotEmpty(t, resp.Changes)

	paths := map[string]string{}
	for _, op := range resp.Changes {
		paths[op.Path] = op.Op
	}
	assert.Equal(t, "replace", paths["/shares/0/amount"])
	assert.Equal(t, "add", paths["/shares/1"])
}

func TestRouting(t *testing.T) {
	tests := []struct {
		method string
		path   string
		status int
	}{
		{fasthttp.MethodGet, "/healthz", fasthttp.StatusOK},
		{fasthttp.MethodPost, "/healthz", fasthttp.StatusMethodNotAllowed},
		{fasthttp.MethodGet, "/calculate", fasthttp.StatusMethodNotAllowed},
		{fasthttp.MethodGet, "/compare", fasthttp.StatusMethodNotAllowed},
		{fasthttp.MethodGet, "/nope", fasthttp.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			ctx := do(t, tt.method, tt.path, "")
			assert.Equal(t, tt.status, ctx.Response.StatusCode())
		})
	}
}
