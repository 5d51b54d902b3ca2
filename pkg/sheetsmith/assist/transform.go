package assist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/llm"
	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/models"
)

// DefaultSampleLimit bounds the rows sent per transform request.
const DefaultSampleLimit = 50

// ErrRowCountMismatch is wrapped when a response does not cover every input row.
var ErrRowCountMismatch = errors.New("row count mismatch")

// TransformResult is a merged transform response.
type TransformResult struct {
	Sheet      models.Sheet
	NewColumns []string
	Message    string
}

// Transformer applies natural-language edit instructions to a sheet via the LLM.
//
// Without Batch only the first SampleLimit rows are sent, and the response must
// still contain exactly one row per row of the full sheet, otherwise it is
// rejected. With Batch the sheet is sent in SampleLimit-sized chunks and every
// chunk must come back with its own row count and the same headers.
type Transformer struct {
	Completer   llm.Completer
	Logger      *zap.Logger
	SampleLimit int
	Batch       bool
}

// NewTransformer returns a Transformer with the default sample limit.
func NewTransformer(c llm.Completer, logger *zap.Logger) *Transformer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transformer{Completer: c, Logger: logger, SampleLimit: DefaultSampleLimit}
}

func (t *Transformer) limit() int {
	if t.SampleLimit > 0 {
		return t.SampleLimit
	}
	return DefaultSampleLimit
}

func (t *Transformer) logger() *zap.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return zap.NewNop()
}

// Transform sends instruction with sheet to the LLM and returns the updated sheet.
// sheet itself is never modified.
func (t *Transformer) Transform(ctx context.Context, sheet models.Sheet, instruction string) (TransformResult, error) {
	if strings.TrimSpace(instruction) == "" {
		return TransformResult{}, models.NewValidationError("transform", []string{"instruction must be non-empty"})
	}
	if t.Completer == nil {
		return TransformResult{}, aiError("transform", errors.New("no LLM collaborator configured"))
	}

	sheet = sheet.Normalized()
	if !t.Batch || len(sheet.Rows) <= t.limit() {
		return t.single(ctx, sheet, instruction)
	}
	return t.batched(ctx, sheet, instruction)
}

func (t *Transformer) single(ctx context.Context, sheet models.Sheet, instruction string) (TransformResult, error) {
	sample := sheet.Rows
	if len(sample) > t.limit() {
		sample = sample[:t.limit()]
	}

	resp, err := t.request(ctx, sheet.Headers, sample, instruction)
	if err != nil {
		return TransformResult{}, err
	}
	if len(resp.Rows) != len(sheet.Rows) {
		t.logger().Warn("transform response dropped or added rows",
			zap.Int("expected", len(sheet.Rows)),
			zap.Int("got", len(resp.Rows)),
			zap.Int("sampled", len(sample)))
		return TransformResult{}, aiError("transform",
			fmt.Errorf("%w: sheet has %d rows, AI returned %d", ErrRowCountMismatch, len(sheet.Rows), len(resp.Rows)))
	}

	return TransformResult{
		Sheet:      models.Sheet{Name: sheet.Name, Headers: resp.Headers, Rows: resp.Rows},
		NewColumns: resp.NewColumns,
		Message:    resp.Message,
	}, nil
}

func (t *Transformer) batched(ctx context.Context, sheet models.Sheet, instruction string) (TransformResult, error) {
	out := TransformResult{Sheet: models.Sheet{Name: sheet.Name, Rows: make([][]models.Cell, 0, len(sheet.Rows))}}
	var messages []string

	for start := 0; start < len(sheet.Rows); start += t.limit() {
		end := start + t.limit()
		if end > len(sheet.Rows) {
			end = len(sheet.Rows)
		}
		chunk := sheet.Rows[start:end]

		resp, err := t.request(ctx, sheet.Headers, chunk, instruction)
		if err != nil {
			return TransformResult{}, err
		}
		if len(resp.Rows) != len(chunk) {
			return TransformResult{}, aiError("transform",
				fmt.Errorf("%w: rows %d-%d: expected %d, AI returned %d", ErrRowCountMismatch, start+1, end, len(chunk), len(resp.Rows)))
		}
		if start == 0 {
			out.Sheet.Headers = resp.Headers
			out.NewColumns = resp.NewColumns
		} else if !sameHeaders(out.Sheet.Headers, resp.Headers) {
			return TransformResult{}, aiError("transform",
				fmt.Errorf("rows %d-%d came back with headers %v, expected %v", start+1, end, resp.Headers, out.Sheet.Headers))
		}
		out.Sheet.Rows = append(out.Sheet.Rows, resp.Rows...)
		if resp.Message != "" && (len(messages) == 0 || messages[len(messages)-1] != resp.Message) {
			messages = append(messages, resp.Message)
		}
		t.logger().Debug("transformed chunk", zap.Int("start", start), zap.Int("end", end))
	}

	out.Message = strings.Join(messages, " ")
	return out, nil
}

func (t *Transformer) request(ctx context.Context, headers []string, rows [][]models.Cell, instruction string) (models.TransformResponse, error) {
	prompt, err := buildTransformPrompt(models.TransformRequest{Operation: instruction, Headers: headers, Rows: rows})
	if err != nil {
		return models.TransformResponse{}, aiError("transform", err)
	}

	content, err := t.Completer.Complete(ctx, prompt, llm.Options{
		Temperature: transformTemperature,
		MaxTokens:   maxCompletionTokens,
		JSON:        true,
	})
	if err != nil {
		t.logger().Warn("AI transformation failed", zap.Error(err))
		return models.TransformResponse{}, aiError("transform", err)
	}

	resp, err := decodeTransform(content, headers)
	if err != nil {
		t.logger().Warn("AI transformation returned an unusable response", zap.Error(err))
		return models.TransformResponse{}, aiError("transform", err)
	}
	return resp, nil
}

func sameHeaders(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
