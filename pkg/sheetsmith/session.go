package sheetsmith

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/assist"
	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/edit"
	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/generator"
	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/llm"
	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/models"
	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/output"
	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/parser"
)

// SessionOptions configures a Session.
type SessionOptions struct {
	// Logger receives session events. Nil disables logging.
	Logger *zap.Logger
	// Completer is the LLM collaborator. Nil disables the AI operations.
	Completer llm.Completer
	// SampleLimit bounds the rows sent per transform request (0 means the default).
	SampleLimit int
	// Batch sends large sheets to the LLM in SampleLimit-sized chunks.
	Batch bool
	// Now overrides the clock used for generated date columns.
	Now func() time.Time
}

// Session owns the state of one editing session: the active workbook and the
// last generation result. Every mutation replaces the stored value whole.
//
// At most one LLM request runs at a time; a second one fails with ErrBusy.
type Session struct {
	ID string

	logger      *zap.Logger
	engine      *generator.Engine
	generator   *assist.Generator
	transformer *assist.Transformer

	processing atomic.Bool

	mu       sync.Mutex
	workbook *models.Workbook
	result   *models.GenerationResult
	// version counts workbook mutations so late transform output can be discarded.
	version uint64
}

// NewSession creates an empty session.
func NewSession(opts SessionOptions) *Session {
	id := uuid.NewString()
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("session_id", id))

	s := &Session{
		ID:     id,
		logger: logger,
		engine: &generator.Engine{Now: opts.Now, Logger: logger.Named("generator")},
	}
	if opts.Completer != nil {
		s.generator = assist.NewGenerator(opts.Completer, logger.Named("assist"))
		s.transformer = assist.NewTransformer(opts.Completer, logger.Named("assist"))
		if opts.SampleLimit > 0 {
			s.transformer.SampleLimit = opts.SampleLimit
		}
		s.transformer.Batch = opts.Batch
	}
	return s
}

// Processing reports whether an LLM request is in flight.
func (s *Session) Processing() bool {
	return s.processing.Load()
}

// Load parses data and makes it the active workbook. On error the previous
// workbook is kept.
func (s *Session) Load(filename string, data []byte) error {
	wb, err := parser.Parse(filename, data)
	if err != nil {
		s.logger.Warn("failed to load workbook", zap.String("filename", filename), zap.Error(err))
		return err
	}
	s.setWorkbook(wb)
	s.logger.Info("workbook loaded",
		zap.String("filename", wb.Filename),
		zap.Int("sheets", len(wb.Sheets)))
	return nil
}

// Open reads and loads the spreadsheet at path.
func (s *Session) Open(path string) error {
	wb, err := OpenFile(path)
	if err != nil {
		s.logger.Warn("failed to open workbook", zap.String("path", path), zap.Error(err))
		return err
	}
	s.setWorkbook(wb)
	s.logger.Info("workbook opened", zap.String("path", path), zap.Int("sheets", len(wb.Sheets)))
	return nil
}

// SetWorkbook replaces the active workbook with a copy of wb.
func (s *Session) SetWorkbook(wb models.Workbook) error {
	if err := wb.Validate(); err != nil {
		return err
	}
	c := wb.Clone()
	s.setWorkbook(&c)
	return nil
}

func (s *Session) setWorkbook(wb *models.Workbook) {
	s.mu.Lock()
	s.workbook = wb
	s.version++
	s.mu.Unlock()
}

// Workbook returns a copy of the active workbook.
func (s *Session) Workbook() (models.Workbook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.workbook == nil {
		return models.Workbook{}, ErrNoWorkbook
	}
	return s.workbook.Clone(), nil
}

// CurrentSheet returns a copy of the active sheet.
func (s *Session) CurrentSheet() (models.Sheet, error) {
	wb, err := s.Workbook()
	if err != nil {
		return models.Sheet{}, err
	}
	return wb.Current()
}

// SelectSheet makes sheet index the active one.
func (s *Session) SelectSheet(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.workbook == nil {
		return ErrNoWorkbook
	}
	next, err := s.workbook.WithCurrent(index)
	if err != nil {
		return err
	}
	s.workbook = &next
	s.version++
	return nil
}

// Apply runs cmds against the active sheet. Either every command applies or
// the workbook is left as it was.
func (s *Session) Apply(cmds ...edit.Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.workbook == nil {
		return ErrNoWorkbook
	}
	next, err := edit.ApplyToWorkbook(*s.workbook, cmds...)
	if err != nil {
		s.logger.Debug("edit rejected", zap.Error(err))
		return err
	}
	s.workbook = &next
	s.version++
	s.logger.Debug("edit applied", zap.Int("commands", len(cmds)))
	return nil
}

// Generate runs the heuristic generation engine. A successful result replaces
// the stored one; a rejected request leaves it in place.
func (s *Session) Generate(req models.GenerationRequest) models.GenerationResult {
	result := s.engine.Generate(req)
	if result.OK() {
		s.setResult(result)
	}
	return result
}

// GenerateWithAI asks the LLM for the rows of req, then runs the engine on
// them. The returned message is the LLM's description of what it generated.
// On failure the stored result is left untouched.
func (s *Session) GenerateWithAI(ctx context.Context, req models.GenerationRequest) (models.GenerationResult, string, error) {
	if s.generator == nil {
		return models.GenerationResult{}, "", models.NewError(models.KindAIProcessing, "generate", ErrNoCompleter)
	}
	if errs := generator.Validate(req); len(errs) > 0 {
		err := models.NewValidationError("generate", errs)
		return models.Failure(err), "", err
	}
	if !s.processing.CompareAndSwap(false, true) {
		return models.GenerationResult{}, "", ErrBusy
	}
	defer s.processing.Store(false)

	filled, message, err := s.generator.Request(ctx, req)
	if err != nil {
		return models.GenerationResult{}, "", err
	}

	result := s.engine.Generate(filled)
	if err := result.Err(); err != nil {
		return result, message, err
	}
	s.setResult(result)
	s.logger.Info("AI dataset generated", zap.String("excel_name", result.ExcelName), zap.Int("rows", len(result.Rows)))
	return result, message, nil
}

func (s *Session) setResult(result models.GenerationResult) {
	s.mu.Lock()
	s.result = &result
	s.mu.Unlock()
}

// Result returns the last generation result.
func (s *Session) Result() (models.GenerationResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return models.GenerationResult{}, false
	}
	return *s.result, true
}

// Transform applies a natural-language instruction to the active sheet via
// the LLM. The sheet is replaced only when the whole response is usable and
// the workbook was not changed while the request was in flight.
func (s *Session) Transform(ctx context.Context, instruction string) (assist.TransformResult, error) {
	if s.transformer == nil {
		return assist.TransformResult{}, models.NewError(models.KindAIProcessing, "transform", ErrNoCompleter)
	}

	s.mu.Lock()
	if s.workbook == nil {
		s.mu.Unlock()
		return assist.TransformResult{}, ErrNoWorkbook
	}
	current, err := s.workbook.Current()
	if err != nil {
		s.mu.Unlock()
		return assist.TransformResult{}, err
	}
	sheet := current.Clone()
	version := s.version
	s.mu.Unlock()

	if !s.processing.CompareAndSwap(false, true) {
		return assist.TransformResult{}, ErrBusy
	}
	defer s.processing.Store(false)

	res, err := s.transformer.Transform(ctx, sheet, instruction)
	if err != nil {
		return assist.TransformResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.version != version {
		s.logger.Warn("discarding transform output for a changed workbook", zap.String("sheet", sheet.Name))
		return assist.TransformResult{}, ErrWorkbookChanged
	}
	next, err := edit.ApplyToWorkbook(*s.workbook, edit.ReplaceSheetCmd{Sheet: res.Sheet})
	if err != nil {
		return assist.TransformResult{}, err
	}
	s.workbook = &next
	s.version++

	s.logger.Info("sheet transformed",
		zap.String("sheet", sheet.Name),
		zap.Strings("new_columns", res.NewColumns),
		zap.Int("rows", len(res.Sheet.Rows)))
	return res, nil
}

// Export encodes the active workbook as xlsx bytes.
func (s *Session) Export() ([]byte, error) {
	wb, err := s.Workbook()
	if err != nil {
		return nil, err
	}
	return output.Export(&wb)
}

// ExportCSV renders the last successful generation result as CSV and returns
// it with its download name.
func (s *Session) ExportCSV() (filename, data string, err error) {
	result, ok := s.Result()
	if !ok || !result.OK() {
		return "", "", ErrNoResult
	}
	return output.CSVFilename(result.ExcelName), output.ExportCSV(result), nil
}

// ExportResult encodes the last successful generation result as a one-sheet xlsx.
func (s *Session) ExportResult() (filename string, data []byte, err error) {
	result, ok := s.Result()
	if !ok || !result.OK() {
		return "", nil, ErrNoResult
	}
	wb, err := output.ResultToWorkbook(result)
	if err != nil {
		return "", nil, err
	}
	data, err = output.Export(wb)
	if err != nil {
		return "", nil, err
	}
	return result.ExcelName, data, nil
}
