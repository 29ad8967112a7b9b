package predict

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// isJSONContentType accepts application/json and any +json media type.
// Parameters like charset are already stripped by gin's ContentType.
func isJSONContentType(contentType string) bool {
	mediaType := strings.ToLower(strings.TrimSpace(contentType))
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// parsePayload decodes the raw request body into a feature map. Numbers stay
// as json.Number until coercion. A body that is not JSON fails with
// ErrMalformedBody; JSON that is not an object fails with ErrNotObject.
func parsePayload(raw []byte) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var decoded any
	if err := decoder.Decode(&decoded); err != nil {
		return nil, ErrMalformedBody
	}
	if _, err := decoder.Token(); err != io.EOF {
		return nil, ErrMalformedBody
	}
	payload, ok := decoded.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return payload, nil
}

// validateFeatures checks the payload against the schema and coerces values
// into a vector in schema order. Missing fields are reported together and
// short-circuit type checking; otherwise every failing coercion is collected
// before failing, so one response carries the complete diagnostic.
func validateFeatures(payload map[string]any, schema []string) ([]float64, error) {
	var missing []string
	for _, field := range schema {
		if _, ok := payload[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	vector := make([]float64, len(schema))
	typeErrors := make(map[string]string)
	for i, field := range schema {
		value := payload[field]
		coerced, err := coerceNumeric(field, value)
		if err != nil {
			typeErrors[field] = err.Error()
			continue
		}
		vector[i] = coerced
	}
	if len(typeErrors) > 0 {
		return nil, &TypeErrorsError{Details: typeErrors}
	}
	return vector, nil
}

// coerceNumeric accepts JSON numbers as-is and numeric strings via a
// best-effort parse. Booleans, arrays, objects and nulls are not numeric.
func coerceNumeric(field string, value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, coercionError(field, value)
		}
		return parsed, nil
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, coercionError(field, value)
		}
		return parsed, nil
	default:
		return 0, coercionError(field, value)
	}
}

func coercionError(field string, value any) error {
	return fmt.Errorf("value for '%s' is not numeric and cannot be converted to float: %v", field, valueRepr(value))
}

func valueRepr(value any) string {
	if value == nil {
		return "null"
	}
	if s, ok := value.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", value)
}
