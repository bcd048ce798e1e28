package jsonpatch

import (
	"testing"

	jsonpatchapply "github.com/evanphx/json-patch/v5"
	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faraid-engine/internal/model"
)

func share(c model.HeirCategory, n int, amount int64, notation string) model.ShareEntry {
	a := decimal.NewFromInt(amount)
	return model.ShareEntry{
		Category:      c,
		HeirLabel:     c.Label(),
		Count:         n,
		Amount:        a,
		PerHeir:       a.Div(decimal.NewFromInt(int64(n))),
		ShareNotation: notation,
		Rationale:     "test",
	}
}

func dist(total int64, shares []model.ShareEntry, excluded ...model.Exclusion) *model.Distribution {
	if excluded == nil {
		excluded = []model.Exclusion{}
	}
	return &model.Distribution{
		NetValue: decimal.NewFromInt(total),
		Shares:   shares,
		Excluded: excluded,
		Total:    decimal.NewFromInt(total),
	}
}

// applyPatch applies ops to the JSON form of a and returns the result.
func applyPatch(t *testing.T, a *model.Distribution, ops []model.PatchOperation) []byte {
	t.Helper()
	if a == nil {
		a = &model.Distribution{}
	}
	doc, err := json.Marshal(withEmptyLists(*a))
	require.NoError(t, err)

	raw, err := json.Marshal(ops)
	require.NoError(t, err)
	patch, err := jsonpatchapply.DecodePatch(raw)
	require.NoError(t, err)

	out, err := patch.Apply(doc)
	require.NoError(t, err, "patch %s", raw)
	return out
}

func marshal(t *testing.T, d *model.Distribution) string {
	t.Helper()
	raw, err := json.Marshal(withEmptyLists(*d))
	require.NoError(t, err)
	return string(raw)
}

func TestDiffIdentical(t *testing.T) {
	d := dist(100, []model.ShareEntry{share(model.Son, 1, 100, "Ashabah")})

	ops, err := Diff(d, d)
	require.NoError(t, err)
	assert.Empty(t, ops)
}

func TestDiffAppliesToBaseline(t *testing.T) {
	tests := []struct {
		name string
		a, b *model.Distribution
	}{
		{
			name: "son joins wife and brothers",
			a: dist(400, []model.ShareEntry{
				share(model.Wife, 1, 100, "1/4"),
				share(model.Brother, 2, 300, "Ashabah"),
			}),
			b: dist(400, []model.ShareEntry{
				share(model.Wife, 1, 50, "1/8"),
				share(model.Son, 1, 350, "Ashabah"),
			}, model.Exclusion{Category: model.Brother, HeirLabel: "Brother", Count: 2, Reason: "excluded by son"}),
		},
		{
			name: "shares shrink",
			a: dist(600, []model.ShareEntry{
				share(model.Husband, 1, 300, "1/2"),
				share(model.Mother, 1, 100, "1/6"),
				share(model.Son, 1, 200, "Ashabah"),
			}),
			b: dist(600, []model.ShareEntry{
				share(model.Husband, 1, 300, "1/2"),
			}),
		},
		{
			name: "count drops to zero",
			a:    dist(100, []model.ShareEntry{share(model.Son, 2, 100, "Ashabah")}),
			b: &model.Distribution{
				NetValue: decimal.NewFromInt(100),
				Shares:   []model.ShareEntry{{Category: model.Son, HeirLabel: "Son", Amount: decimal.Zero, PerHeir: decimal.Zero}},
				Excluded: []model.Exclusion{},
				Total:    decimal.NewFromInt(100),
			},
		},
		{
			name: "from nil",
			a:    nil,
			b:    dist(300, []model.ShareEntry{share(model.Husband, 1, 300, "1/2")}),
		},
		{
			name: "awl adjustment appears",
			a:    dist(700, []model.ShareEntry{share(model.Husband, 1, 300, "1/2")}),
			b: func() *model.Distribution {
				d := dist(700, []model.ShareEntry{share(model.Husband, 1, 300, "1/2 (awl)")})
				d.Adjustments = []string{"awl"}
				return d
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops, err := Diff(tt.a, tt.b)
			require.NoError(t, err)
			require.NotEmpty(t, ops)

			assert.JSONEq(t, marshal(t, tt.b), string(applyPatch(t, tt.a, ops)))
		})
	}
}

func TestDiffAddressesArrayIndices(t *testing.T) {
	a := dist(400, []model.ShareEntry{
		share(model.Wife, 1, 100, "1/4"),
		share(model.Brother, 2, 300, "Ashabah"),
	})
	b := dist(400, []model.ShareEntry{
		share(model.Wife, 1, 50, "1/8"),
		share(model.Brother, 2, 300, "Ashabah"),
	})

	ops, err := Diff(a, b)
	require.NoError(t, err)
	require.Len(t, ops, 3)
	assert.Equal(t, model.PatchOperation{Op: "replace", Path: "/shares/0/amount", Value: "50"}, ops[0])
	assert.Equal(t, "/shares/0/per_heir", ops[1].Path)
	assert.Equal(t, model.PatchOperation{Op: "replace", Path: "/shares/0/share_notation", Value: "1/8"}, ops[2])
}

func TestPatchOperationKeepsZeroValues(t *testing.T) {
	raw, err := json.Marshal(model.PatchOperation{Op: "replace", Path: "/shares/0/count", Value: float64(0)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"op":"replace","path":"/shares/0/count","value":0}`, string(raw))

	raw, err = json.Marshal(model.PatchOperation{Op: "remove", Path: "/shares/1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"op":"remove","path":"/shares/1"}`, string(raw))
}

func TestEscapeKey(t *testing.T) {
	assert.Equal(t, "a~1b~0c", escapeKey("a/b~c"))
}
