package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith"
	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/edit"
	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/models"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), err
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "people.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestGenerateCSV(t *testing.T) {
	out := filepath.Join(t.TempDir(), "team.csv")
	_, err := execute(t, "generate", "--columns", "Name,Age", "--rows", "2", "--task", "Team", "--csv", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Name,Age\nAarav,20\nPriya,21", string(data))
}

func TestGenerateRejected(t *testing.T) {
	_, err := execute(t, "generate", "--rows", "0", "--task", "Nothing")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Contains(t, err.Error(), "Column count must be greater than 0")
}

func TestGenerateRowData(t *testing.T) {
	dir := t.TempDir()
	rowsPath := filepath.Join(dir, "rows.json")
	require.NoError(t, os.WriteFile(rowsPath, []byte(`[["Tea", 40], ["Coffee", 60]]`), 0644))

	stdout, err := execute(t, "generate", "--columns", "Item,Price", "--rows", "3", "--task", "Menu", "--row-data", rowsPath, "--json")
	require.NoError(t, err)

	var result models.GenerationResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, models.StatusSuccess, result.Status)
	assert.Equal(t, "menu.xlsx", result.ExcelName)
	require.Len(t, result.Rows, 3)
	assert.Equal(t, []models.Cell{models.String("Coffee"), models.Int(60)}, result.Rows[1])
}

func TestInspect(t *testing.T) {
	path := writeCSV(t, "Name,Age\nAarav,21\n")
	stdout, err := execute(t, "inspect", path, "--sheet", "0")
	require.NoError(t, err)

	var sheet models.Sheet
	require.NoError(t, json.Unmarshal([]byte(stdout), &sheet))
	assert.Equal(t, "people", sheet.Name)
	assert.Equal(t, []models.Cell{models.String("Aarav"), models.Int(21)}, sheet.Rows[0])

	_, err = execute(t, "inspect", filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.ErrorIs(t, err, sheetsmith.ErrFileNotFound)
}

func TestEditAppliesInOrder(t *testing.T) {
	path := writeCSV(t, "Name,Age\nAarav,21\nPriya,22\n")
	out := filepath.Join(t.TempDir(), "out.xlsx")

	_, err := execute(t, "edit", path, "-o", out,
		"--add-column", "Country=India",
		"--set-cell", "1,country=Nepal",
		"--rename-column", "Age=Years",
		"--insert-row", "end=Meera,30",
		"--delete-row", "0",
	)
	require.NoError(t, err)

	wb, err := sheetsmith.OpenFile(out)
	require.NoError(t, err)
	sheet := wb.Sheets[0]
	assert.Equal(t, []string{"Name", "Years", "Country"}, sheet.Headers)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, []models.Cell{models.String("Priya"), models.Int(22), models.String("Nepal")}, sheet.Rows[0])
	assert.Equal(t, []models.Cell{models.String("Meera"), models.Int(30)}, sheet.Rows[1][:2])
	assert.Equal(t, "", sheet.Rows[1][2].String())
}

func TestEditFailureWritesNothing(t *testing.T) {
	path := writeCSV(t, "Name\nAarav\n")
	out := filepath.Join(t.TempDir(), "out.xlsx")

	_, err := execute(t, "edit", path, "-o", out, "--add-column", "X", "--delete-row", "5")
	assert.ErrorIs(t, err, models.ErrIndex)
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestParseEditFlags(t *testing.T) {
	c, err := parseInsertRow("2")
	require.NoError(t, err)
	assert.Equal(t, edit.InsertRowCmd{Index: 2}, c)

	c, err = parseInsertRow("end=a,,3")
	require.NoError(t, err)
	assert.Equal(t, edit.InsertRowCmd{Index: -1, Values: []models.Cell{models.String("a"), models.String(""), models.Int(3)}}, c)

	_, err = parseInsertRow("-1")
	assert.ErrorIs(t, err, models.ErrIndex)

	_, err = parseSetCell("1=2")
	assert.Error(t, err)
	_, err = parseRenameColumn("Age")
	assert.Error(t, err)
	_, err = parseAddColumn("=x")
	assert.Error(t, err)

	_, err = resolveColumn(models.Sheet{Headers: []string{"A"}}, "B")
	assert.ErrorIs(t, err, models.ErrIndex)
}

func TestFailingCommandFlushesLog(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "sheetsmith.log")
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("logging:\n  file: "+logPath+"\n"), 0644))

	_, err := execute(t, "--config", configFile, "generate", "--rows", "0", "--task", "Nothing")
	require.Error(t, err)
	assert.Nil(t, cleanupLogger)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"command failed"`)
}

func TestTransformCSV(t *testing.T) {
	content, err := json.Marshal(`{"headers":["Name","Age"],"rows":[["Aarav",22],["Priya",23]],"message":"Added one year"}`)
	require.NoError(t, err)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":` + string(content) + `}}]}`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(strings.Join([]string{
		"llm:",
		"  provider: openai",
		"  api_key: test-key",
		"  base_url: " + srv.URL + "/v1/",
	}, "\n")+"\n"), 0644))

	path := writeCSV(t, "Name,Age\nAarav,21\nPriya,22\n")
	out := filepath.Join(dir, "older.csv")
	stdout, err := execute(t, "--config", configFile, "transform", path, "-i", "Add one to Age", "--csv", out)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Name,Age\nAarav,22\nPriya,23", string(data))
}

func TestInitWritesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheetsmith.yaml")
	_, err := execute(t, "init", path)
	require.NoError(t, err)

	cfg, err := sheetsmith.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, sheetsmith.DefaultConfig().Transform, cfg.Transform)

	_, err = execute(t, "init", path)
	assert.ErrorContains(t, err, "already exists")
	_, err = execute(t, "init", path, "--force")
	assert.NoError(t, err)
}
