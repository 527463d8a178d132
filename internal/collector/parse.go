package collector

import (
	"fmt"

	"github.com/newthinker/recruitdash/internal/core"
	"github.com/tidwall/gjson"
)

// ParsePoints decodes a response body that must be a JSON array of objects.
// Numbers decode as float64, strings as string.
func ParsePoints(body []byte) ([]core.DataPoint, error) {
	if !gjson.ValidBytes(body) {
		return nil, core.WrapError(core.ErrMalformedData, fmt.Errorf("invalid JSON"))
	}

	root := gjson.ParseBytes(body)
	if !root.IsArray() {
		return nil, core.WrapError(core.ErrMalformedData,
			fmt.Errorf("expected JSON array, got %s", describe(root)))
	}

	items := root.Array()
	points := make([]core.DataPoint, 0, len(items))
	for i, item := range items {
		if !item.IsObject() {
			return nil, core.WrapError(core.ErrMalformedData,
				fmt.Errorf("element %d: expected object, got %s", i, describe(item)))
		}
		dp := make(core.DataPoint)
		item.ForEach(func(key, value gjson.Result) bool {
			dp[key.String()] = value.Value()
			return true
		})
		points = append(points, dp)
	}

	return points, nil
}

func describe(r gjson.Result) string {
	switch {
	case r.IsArray():
		return "array"
	case r.IsObject():
		return "object"
	default:
		return r.Type.String()
	}
}
