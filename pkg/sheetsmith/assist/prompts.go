package assist

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/models"
)

const generatePrompt = `You are an AI Excel generator.
Generate %d columns of data based on this description: %q.
The columns should correspond to: %s.
If the description contains pasted data, parse it into rows instead of inventing values.
Ensure each row has exactly %d values.

Return ONLY valid JSON with this structure:
{
  "rows": [["value1", "value2"], ["value3", "value4"]],
  "isData": true,
  "message": "Brief description of what was generated"
}
Do not include markdown formatting like ` + "```json" + `. Just the raw JSON string.`

const transformPrompt = `You are an AI Excel editor.
Current Data (first %d rows): %s

Instruction: %q

Apply the instruction to the data. If a formula is needed, calculate the result directly.
For conditions, evaluate them per row and fill values accordingly.
If adding a column, include the new header in "headers" and values in "rows".

Return ONLY valid JSON with this structure:
{
  "headers": ["Col1", "Col2"],
  "rows": [["val1", "val2"], ["val3", "val4"]],
  "newColumns": ["NameOfNewColumnIfAny"],
  "message": "Brief description of what was done"
}
Ensure "rows" contains ALL %d rows provided in the input, in the same order, updated accordingly.`

func buildGeneratePrompt(req models.AIGenerateRequest) string {
	return fmt.Sprintf(generatePrompt,
		req.ColumnCount, req.Description, strings.Join(req.ColumnNames, ", "), req.ColumnCount)
}

func buildTransformPrompt(req models.TransformRequest) (string, error) {
	dataContext, err := json.Marshal(struct {
		Headers []string        `json:"headers"`
		Rows    [][]models.Cell `json:"rows"`
	}{req.Headers, req.Rows})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(transformPrompt, len(req.Rows), dataContext, req.Operation, len(req.Rows)), nil
}
