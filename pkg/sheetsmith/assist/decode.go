package assist

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/models"
)

var errNoJSON = errors.New("could not find a JSON object in the AI response")

// extractJSON returns the JSON object embedded in an LLM completion. Raw JSON is
// returned as is; otherwise the span from the first '{' to the last '}' is used,
// which also strips markdown code fences.
func extractJSON(content string) ([]byte, error) {
	trimmed := strings.TrimSpace(content)
	if json.Valid([]byte(trimmed)) && strings.HasPrefix(trimmed, "{") {
		return []byte(trimmed), nil
	}
	start := strings.IndexByte(trimmed, '{')
	end := strings.LastIndexByte(trimmed, '}')
	if start < 0 || end <= start {
		return nil, errNoJSON
	}
	return []byte(trimmed[start : end+1]), nil
}

// generateWire mirrors models.AIGenerateResponse with presence tracking.
type generateWire struct {
	Rows    *[][]models.Cell `json:"rows"`
	IsData  *bool            `json:"isData"`
	Message string           `json:"message"`
}

func decodeGenerate(content string, columnCount int) (models.AIGenerateResponse, error) {
	var resp models.AIGenerateResponse
	raw, err := extractJSON(content)
	if err != nil {
		return resp, err
	}

	var wire generateWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return resp, fmt.Errorf("invalid AI response: %w", err)
	}
	if wire.Rows == nil {
		return resp, errors.New(`AI response is missing "rows"`)
	}
	if len(*wire.Rows) == 0 {
		return resp, errors.New("AI response contains no rows")
	}
	for i, row := range *wire.Rows {
		if len(row) != columnCount {
			return resp, fmt.Errorf("AI row %d has %d values, expected %d", i+1, len(row), columnCount)
		}
	}

	resp.Rows = *wire.Rows
	resp.IsData = wire.IsData == nil || *wire.IsData
	resp.Message = wire.Message
	return resp, nil
}

// transformWire mirrors models.TransformResponse with presence tracking.
type transformWire struct {
	Headers    *[]string        `json:"headers"`
	Rows       *[][]models.Cell `json:"rows"`
	NewColumns *[]string        `json:"newColumns"`
	Message    string           `json:"message"`
}

// decodeTransform parses a transform completion and checks it is rectangular.
// A missing newColumns list is derived from the headers absent in original.
func decodeTransform(content string, original []string) (models.TransformResponse, error) {
	var resp models.TransformResponse
	raw, err := extractJSON(content)
	if err != nil {
		return resp, err
	}

	var wire transformWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return resp, fmt.Errorf("invalid AI response: %w", err)
	}
	if wire.Headers == nil || len(*wire.Headers) == 0 {
		return resp, errors.New(`AI response is missing "headers"`)
	}
	if wire.Rows == nil {
		return resp, errors.New(`AI response is missing "rows"`)
	}

	headers := *wire.Headers
	for i, row := range *wire.Rows {
		if len(row) != len(headers) {
			return resp, fmt.Errorf("AI row %d has %d values, expected %d", i+1, len(row), len(headers))
		}
	}

	resp.Headers = headers
	resp.Rows = *wire.Rows
	resp.Message = wire.Message
	if wire.NewColumns != nil {
		resp.NewColumns = *wire.NewColumns
	} else {
		resp.NewColumns = addedHeaders(original, headers)
	}
	return resp, nil
}

func addedHeaders(before, after []string) []string {
	seen := make(map[string]bool, len(before))
	for _, h := range before {
		seen[h] = true
	}
	added := []string{}
	for _, h := range after {
		if !seen[h] {
			added = append(added, h)
		}
	}
	return added
}
