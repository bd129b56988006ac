package apimodels

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Decode maps a JSON document from the analysis API onto AnalyzeResponse.
// Decoding is weakly typed so that numbers sent where strings are expected
// (and the reverse) survive; absent or null fields stay nil, and so do
// fields whose value cannot be read as their type.
func Decode(body []byte) (*AnalyzeResponse, error) {
	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	raw, ok := doc.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %T", doc)
	}

	return DecodeMap(raw)
}

// DecodeMap is Decode for an already parsed document.
func DecodeMap(raw map[string]interface{}) (*AnalyzeResponse, error) {
	var resp AnalyzeResponse
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       lenient,
		Result:           &resp,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode analysis response: %w", err)
	}

	resp.Raw = raw
	return &resp, nil
}

// lenient replaces values that cannot become the target type with nil
// for pointer targets and the zero value otherwise, which leaves the field
// unset. Numeric and boolean strings are parsed here so that surrounding
// whitespace is tolerated.
func lenient(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	target := to
	if target.Kind() == reflect.Ptr {
		target = target.Elem()
	}
	unset := func() (interface{}, error) {
		if to.Kind() == reflect.Ptr {
			return nil, nil
		}
		return reflect.Zero(to).Interface(), nil
	}

	switch target.Kind() {
	case reflect.Struct, reflect.Map:
		if from.Kind() != reflect.Map {
			return unset()
		}
	case reflect.Slice:
		if from.Kind() == reflect.Map {
			return unset()
		}
	case reflect.String:
		if from.Kind() == reflect.Map || from.Kind() == reflect.Slice {
			return unset()
		}
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int64:
		switch v := data.(type) {
		case float64, bool:
			return v, nil
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				return unset()
			}
			if target.Kind() == reflect.Float32 || target.Kind() == reflect.Float64 {
				return f, nil
			}
			if math.Abs(f) >= math.MaxInt64 {
				return unset()
			}
			return int64(f), nil
		default:
			return unset()
		}
	case reflect.Bool:
		switch v := data.(type) {
		case bool, float64:
			return v, nil
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return unset()
			}
			return b, nil
		default:
			return unset()
		}
	}
	return data, nil
}
