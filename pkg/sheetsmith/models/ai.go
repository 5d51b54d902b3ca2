package models

// AIGenerateRequest asks the LLM to produce rows for a new sheet.
type AIGenerateRequest struct {
	Description string   `json:"description"`
	ColumnCount int      `json:"columnCount"`
	ColumnNames []string `json:"columnNames"`
}

// AIGenerateResponse is the payload expected back for an AIGenerateRequest.
type AIGenerateResponse struct {
	Rows    [][]Cell `json:"rows"`
	IsData  bool     `json:"isData"`
	Message string   `json:"message"`
}

// TransformRequest carries an edit instruction and a bounded excerpt of a sheet.
type TransformRequest struct {
	Operation string   `json:"operation"`
	Headers   []string `json:"headers"`
	Rows      [][]Cell `json:"rows"`
}

// TransformResponse is the payload expected back for a TransformRequest.
type TransformResponse struct {
	Headers    []string `json:"headers"`
	Rows       [][]Cell `json:"rows"`
	NewColumns []string `json:"newColumns"`
	Message    string   `json:"message"`
}
