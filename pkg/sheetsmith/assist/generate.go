// Package assist builds LLM requests for dataset generation and sheet
// transformation and reconciles the responses with the document model.
package assist

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/generator"
	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/llm"
	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/models"
)

const (
	generateTemperature  = 0.5
	transformTemperature = 0.1
	maxCompletionTokens  = 4096
)

// Generator asks the LLM for the rows of a new sheet.
type Generator struct {
	Completer llm.Completer
	Logger    *zap.Logger
}

// NewGenerator returns a Generator backed by c.
func NewGenerator(c llm.Completer, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{Completer: c, Logger: logger}
}

func (g *Generator) logger() *zap.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return zap.NewNop()
}

// Rows requests rows for req and fits them to rowCount, padding with blank rows.
func (g *Generator) Rows(ctx context.Context, req models.AIGenerateRequest, rowCount int) (models.AIGenerateResponse, error) {
	if g.Completer == nil {
		return models.AIGenerateResponse{}, aiError("generate", errors.New("no LLM collaborator configured"))
	}
	if req.ColumnCount <= 0 || len(req.ColumnNames) != req.ColumnCount {
		return models.AIGenerateResponse{}, models.NewValidationError("generate", []string{"column names must match a positive column count"})
	}

	content, err := g.Completer.Complete(ctx, buildGeneratePrompt(req), llm.Options{
		Temperature: generateTemperature,
		MaxTokens:   maxCompletionTokens,
		JSON:        true,
	})
	if err != nil {
		g.logger().Warn("AI generation failed", zap.Error(err))
		return models.AIGenerateResponse{}, aiError("generate", err)
	}

	resp, err := decodeGenerate(content, req.ColumnCount)
	if err != nil {
		g.logger().Warn("AI generation returned an unusable response", zap.Error(err))
		return models.AIGenerateResponse{}, aiError("generate", err)
	}
	if rowCount > 0 {
		resp.Rows = generator.FitRows(resp.Rows, rowCount, req.ColumnCount)
	}

	g.logger().Debug("AI generated rows", zap.Int("rows", len(resp.Rows)), zap.Bool("is_data", resp.IsData))
	return resp, nil
}

// Request runs Rows for a generation request and returns a copy of req that
// carries the AI rows verbatim (AutoFill off).
func (g *Generator) Request(ctx context.Context, req models.GenerationRequest) (models.GenerationRequest, string, error) {
	resp, err := g.Rows(ctx, models.AIGenerateRequest{
		Description: req.TaskDescription,
		ColumnCount: req.ColumnCount,
		ColumnNames: req.ColumnNames,
	}, req.RowCount)
	if err != nil {
		return req, "", err
	}
	out := req
	out.ColumnNames = append([]string(nil), req.ColumnNames...)
	out.RowData = resp.Rows
	out.AutoFill = false
	return out, resp.Message, nil
}

func aiError(op string, err error) error {
	return models.NewError(models.KindAIProcessing, op, err)
}
