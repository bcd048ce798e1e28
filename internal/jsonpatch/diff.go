package jsonpatch

import (
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rotisserie/eris"

	"faraid-engine/internal/model"
)

// Diff computes an RFC 6902 JSON Patch that turns the JSON document of
// distribution a into that of b. Paths address the serialized form, so
// shares and exclusions are indexed by array position. A nil distribution is
// treated as empty.
func Diff(a, b *model.Distribution) ([]model.PatchOperation, error) {
	docA, err := decode(a)
	if err != nil {
		return nil, err
	}
	docB, err := decode(b)
	if err != nil {
		return nil, err
	}

	ops := diffValues(docA, docB, "")
	if ops == nil {
		ops = []model.PatchOperation{}
	}
	return ops, nil
}

func decode(d *model.Distribution) (interface{}, error) {
	if d == nil {
		d = &model.Distribution{}
	}

	raw, err := json.Marshal(withEmptyLists(*d))
	if err != nil {
		return nil, eris.Wrap(err, "jsonpatch: marshal distribution")
	}
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, eris.Wrap(err, "jsonpatch: decode distribution")
	}
	return doc, nil
}

// withEmptyLists keeps shares and excluded as arrays so that paths into them
// resolve on both sides.
func withEmptyLists(d model.Distribution) *model.Distribution {
	if d.Shares == nil {
		d.Shares = []model.ShareEntry{}
	}
	if d.Excluded == nil {
		d.Excluded = []model.Exclusion{}
	}
	return &d
}

func diffValues(a, b interface{}, path string) []model.PatchOperation {
	if a == nil && b == nil {
		return nil
	}
	if a == nil || b == nil {
		return []model.PatchOperation{replaceOp(path, b)}
	}

	aMap, aIsMap := a.(map[string]interface{})
	bMap, bIsMap := b.(map[string]interface{})
	if aIsMap && bIsMap {
		return diffObjects(aMap, bMap, path)
	}

	aArr, aIsArr := a.([]interface{})
	bArr, bIsArr := b.([]interface{})
	if aIsArr && bIsArr {
		return diffArrays(aArr, bArr, path)
	}

	if aIsMap || bIsMap || aIsArr || bIsArr || a != b {
		return []model.PatchOperation{replaceOp(path, b)}
	}
	return nil
}

func diffObjects(a, b map[string]interface{}, path string) []model.PatchOperation {
	var ops []model.PatchOperation

	for _, k := range sortedKeys(a) {
		if _, ok := b[k]; !ok {
			ops = append(ops, removeOp(path+"/"+escapeKey(k)))
		}
	}

	for _, k := range sortedKeys(b) {
		childPath := path + "/" + escapeKey(k)
		av, inA := a[k]
		if !inA {
			ops = append(ops, addOp(childPath, b[k]))
			continue
		}
		ops = append(ops, diffValues(av, b[k], childPath)...)
	}
	return ops
}

func diffArrays(a, b []interface{}, path string) []model.PatchOperation {
	var ops []model.PatchOperation

	common := min(len(a), len(b))
	for i := 0; i < common; i++ {
		ops = append(ops, diffValues(a[i], b[i], path+"/"+strconv.Itoa(i))...)
	}

	// Remove from the end so earlier indices stay valid.
	for i := len(a) - 1; i >= common; i-- {
		ops = append(ops, removeOp(path+"/"+strconv.Itoa(i)))
	}
	for i := common; i < len(b); i++ {
		ops = append(ops, addOp(path+"/"+strconv.Itoa(i), b[i]))
	}
	return ops
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func replaceOp(path string, value interface{}) model.PatchOperation {
	return model.PatchOperation{Op: "replace", Path: path, Value: value}
}

func addOp(path string, value interface{}) model.PatchOperation {
	return model.PatchOperation{Op: "add", Path: path, Value: value}
}

func removeOp(path string) model.PatchOperation {
	return model.PatchOperation{Op: "remove", Path: path}
}

// escapeKey escapes a JSON Pointer token per RFC 6901.
func escapeKey(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return s
}
