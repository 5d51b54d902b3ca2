package assist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/llm"
	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/models"
)

// scripted returns canned completions in order and records the prompts.
type scripted struct {
	replies []string
	prompts []string
	opts    []llm.Options
	err     error
}

func (s *scripted) Complete(_ context.Context, prompt string, opts llm.Options) (string, error) {
	s.prompts = append(s.prompts, prompt)
	s.opts = append(s.opts, opts)
	if s.err != nil {
		return "", s.err
	}
	if len(s.replies) == 0 {
		return "", errors.New("no more replies")
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply, nil
}

func numberedSheet(n int) models.Sheet {
	s := models.Sheet{Name: "Data", Headers: []string{"Item", "Price"}}
	for i := 0; i < n; i++ {
		s.Rows = append(s.Rows, []models.Cell{models.String(fmt.Sprintf("item%d", i+1)), models.Int((i + 1) * 10)})
	}
	return s
}

func TestGeneratorRows(t *testing.T) {
	fake := &scripted{replies: []string{"```json\n{\"rows\":[[\"Aarav\",21],[\"Priya\",22]],\"isData\":false,\"message\":\"two people\"}\n```"}}
	g := NewGenerator(fake, nil)

	resp, err := g.Rows(context.Background(), models.AIGenerateRequest{
		Description: "people", ColumnCount: 2, ColumnNames: []string{"Name", "Age"},
	}, 3)
	require.NoError(t, err)

	require.Len(t, resp.Rows, 3)
	assert.Equal(t, []models.Cell{models.String("Aarav"), models.Int(21)}, resp.Rows[0])
	assert.Equal(t, models.BlankRow(2), resp.Rows[2])
	assert.False(t, resp.IsData)
	assert.Equal(t, "two people", resp.Message)

	require.Len(t, fake.prompts, 1)
	assert.Contains(t, fake.prompts[0], "Name, Age")
	assert.Contains(t, fake.prompts[0], `"people"`)
	assert.True(t, fake.opts[0].JSON)
	assert.InDelta(t, 0.5, fake.opts[0].Temperature, 1e-9)
}

func TestGeneratorRequest(t *testing.T) {
	fake := &scripted{replies: []string{`{"rows":[["a"],["b"]],"isData":true,"message":"ok"}`}}
	g := NewGenerator(fake, nil)

	req, msg, err := g.Request(context.Background(), models.GenerationRequest{
		ColumnCount: 1, RowCount: 1, ColumnNames: []string{"X"}, TaskDescription: "letters", AutoFill: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", msg)
	assert.False(t, req.AutoFill)
	assert.Equal(t, [][]models.Cell{models.Strings("a")}, req.RowData)
}

func TestGeneratorRejectsBadResponses(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{"not json", "sorry, I cannot", "could not find a JSON object"},
		{"missing rows", `{"message":"hi"}`, `missing "rows"`},
		{"empty rows", `{"rows":[]}`, "no rows"},
		{"ragged", `{"rows":[["a","b"],["c"]]}`, "AI row 2 has 1 values, expected 2"},
		{"bool cell", `{"rows":[[true,"b"]]}`, "invalid AI response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator(&scripted{replies: []string{tt.reply}}, nil)
			_, err := g.Rows(context.Background(), models.AIGenerateRequest{ColumnCount: 2, ColumnNames: []string{"A", "B"}}, 0)
			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrAIProcessing)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGeneratorTransportError(t *testing.T) {
	cause := errors.New("connection refused")
	g := NewGenerator(&scripted{err: cause}, nil)
	_, err := g.Rows(context.Background(), models.AIGenerateRequest{ColumnCount: 1, ColumnNames: []string{"A"}}, 1)
	assert.ErrorIs(t, err, models.ErrAIProcessing)
	assert.ErrorIs(t, err, cause)
}

func TestTransformAddsColumn(t *testing.T) {
	sheet := numberedSheet(2)
	fake := &scripted{replies: []string{`{
		"headers": ["Item", "Price", "Tax"],
		"rows": [["item1", 10, 1], ["item2", 20, 2]],
		"message": "Added Tax as Price x 0.10"
	}`}}
	tr := NewTransformer(fake, nil)

	res, err := tr.Transform(context.Background(), sheet, "Add Tax = Price × 0.10")
	require.NoError(t, err)
	assert.Equal(t, "Data", res.Sheet.Name)
	assert.Equal(t, []string{"Item", "Price", "Tax"}, res.Sheet.Headers)
	assert.Equal(t, models.Int(2), res.Sheet.Rows[1][2])
	assert.Equal(t, []string{"Tax"}, res.NewColumns, "derived when missing")
	assert.Equal(t, "Added Tax as Price x 0.10", res.Message)
	assert.Len(t, sheet.Headers, 2, "input must not change")

	assert.InDelta(t, 0.1, fake.opts[0].Temperature, 1e-9)
	assert.Contains(t, fake.prompts[0], `"headers":["Item","Price"]`)
}

func TestTransformSamplesFirstRows(t *testing.T) {
	sheet := numberedSheet(60)
	fake := &scripted{replies: []string{transformReply(sheet.Headers, 50)}}
	tr := NewTransformer(fake, nil)

	_, err := tr.Transform(context.Background(), sheet, "uppercase items")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrAIProcessing)
	assert.ErrorIs(t, err, ErrRowCountMismatch)

	require.Len(t, fake.prompts, 1)
	assert.Contains(t, fake.prompts[0], `"item50"`)
	assert.NotContains(t, fake.prompts[0], `"item51"`)
	assert.Equal(t, 50, countRows(t, fake.prompts[0]))
}

func TestTransformRejectsRowCountMismatch(t *testing.T) {
	sheet := numberedSheet(3)
	tr := NewTransformer(&scripted{replies: []string{transformReply(sheet.Headers, 2)}}, nil)

	_, err := tr.Transform(context.Background(), sheet, "drop a row")
	assert.ErrorIs(t, err, ErrRowCountMismatch)
	assert.Contains(t, err.Error(), "sheet has 3 rows, AI returned 2")
}

func TestTransformRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"no headers", `{"rows":[["a","b"]]}`},
		{"no rows", `{"headers":["A","B"]}`},
		{"ragged", `{"headers":["A","B"],"rows":[["a"]]}`},
		{"object cell", `{"headers":["A","B"],"rows":[[{"x":1},"b"]]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTransformer(&scripted{replies: []string{tt.reply}}, nil)
			_, err := tr.Transform(context.Background(), numberedSheet(1), "x")
			assert.ErrorIs(t, err, models.ErrAIProcessing)
		})
	}
}

func TestTransformValidatesInstruction(t *testing.T) {
	tr := NewTransformer(&scripted{}, nil)
	_, err := tr.Transform(context.Background(), numberedSheet(1), "   ")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestTransformBatch(t *testing.T) {
	sheet := numberedSheet(5)
	headers := []string{"Item", "Price", "Flag"}
	fake := &scripted{replies: []string{
		transformReply(headers, 2),
		transformReply(headers, 2),
		transformReply(headers, 1),
	}}
	tr := &Transformer{Completer: fake, SampleLimit: 2, Batch: true}

	res, err := tr.Transform(context.Background(), sheet, "flag rows")
	require.NoError(t, err)
	assert.Len(t, fake.prompts, 3)
	assert.Equal(t, headers, res.Sheet.Headers)
	assert.Len(t, res.Sheet.Rows, 5)
	assert.Equal(t, "done", res.Message)
	assert.Contains(t, fake.prompts[2], `"item5"`)
}

func TestTransformBatchHeaderDisagreement(t *testing.T) {
	fake := &scripted{replies: []string{
		transformReply([]string{"A", "B"}, 2),
		transformReply([]string{"A", "C"}, 1),
	}}
	tr := &Transformer{Completer: fake, SampleLimit: 2, Batch: true}

	_, err := tr.Transform(context.Background(), numberedSheet(3), "x")
	assert.ErrorIs(t, err, models.ErrAIProcessing)
	assert.Contains(t, err.Error(), "came back with headers")
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"Here you go:\n```json\n{\"a\":{\"b\":2}}\n```", `{"a":{"b":2}}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		got, err := extractJSON(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(got))
	}

	_, err := extractJSON("[1,2]")
	assert.ErrorIs(t, err, errNoJSON)
}

func transformReply(headers []string, n int) string {
	rows := make([][]interface{}, n)
	for i := range rows {
		row := make([]interface{}, len(headers))
		for j := range row {
			row[j] = fmt.Sprintf("v%d_%d", i, j)
		}
		rows[i] = row
	}
	data, _ := json.Marshal(map[string]interface{}{
		"headers":    headers,
		"rows":       rows,
		"newColumns": []string{},
		"message":    "done",
	})
	return string(data)
}

var itemPattern = regexp.MustCompile(`"item\d+"`)

func countRows(t *testing.T, prompt string) int {
	t.Helper()
	return len(itemPattern.FindAllString(strings.SplitN(prompt, "Instruction:", 2)[0], -1))
}
