package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/models"
)

var (
	samplePeople   = []string{"Aarav", "Priya", "Rahul", "Sneha", "Vikram", "Anjali", "Rohan", "Kavya", "Aditya", "Mira"}
	sampleCities   = []string{"Mumbai", "Delhi", "Bangalore", "Hyderabad", "Chennai", "Pune", "Kolkata", "Jaipur"}
	sampleStatuses = []string{"Active", "Inactive", "Pending", "Completed"}
)

// filler produces the value of one column for row i.
type filler func(i int, today time.Time) models.Cell

// keywordRule maps column-name substrings to a filler.
type keywordRule struct {
	keywords []string
	fill     filler
}

// sampleRules is checked in order; the first rule with a matching keyword wins.
var sampleRules = []keywordRule{
	{[]string{"name"}, func(i int, _ time.Time) models.Cell {
		return models.String(samplePeople[i%len(samplePeople)])
	}},
	{[]string{"age"}, func(i int, _ time.Time) models.Cell {
		return models.Int(20 + i%30)
	}},
	{[]string{"city"}, func(i int, _ time.Time) models.Cell {
		return models.String(sampleCities[i%len(sampleCities)])
	}},
	{[]string{"email"}, func(i int, _ time.Time) models.Cell {
		return models.String(fmt.Sprintf("user%d@example.com", i+1))
	}},
	{[]string{"phone", "mobile"}, func(i int, _ time.Time) models.Cell {
		return models.String(fmt.Sprintf("+91 %d", 9000000000+int64(i)))
	}},
	{[]string{"salary", "price", "amount"}, func(i int, _ time.Time) models.Cell {
		return models.Int(30000 + i*5000)
	}},
	{[]string{"date"}, func(i int, today time.Time) models.Cell {
		return models.String(today.AddDate(0, 0, i).Format("2006-01-02"))
	}},
	{[]string{"status"}, func(i int, _ time.Time) models.Cell {
		return models.String(sampleStatuses[i%len(sampleStatuses)])
	}},
	{[]string{"id", "number", "count"}, func(i int, _ time.Time) models.Cell {
		return models.Int(i + 1)
	}},
}

func placeholder(i int, _ time.Time) models.Cell {
	return models.String(fmt.Sprintf("Data %d", i+1))
}

// fillerFor picks the filler for a column name.
func fillerFor(column string) filler {
	lower := strings.ToLower(column)
	for _, rule := range sampleRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.fill
			}
		}
	}
	return placeholder
}

// SampleRows synthesizes rowCount rows for columns. The output depends only on
// the column names, rowCount and the calendar date of today (taken in UTC).
func SampleRows(columns []string, rowCount int, today time.Time) [][]models.Cell {
	fillers := make([]filler, len(columns))
	for i, col := range columns {
		fillers[i] = fillerFor(col)
	}

	today = today.UTC()
	rows := make([][]models.Cell, 0, rowCount)
	for i := 0; i < rowCount; i++ {
		row := make([]models.Cell, len(columns))
		for c, fill := range fillers {
			row[c] = fill(i, today)
		}
		rows = append(rows, row)
	}
	return rows
}
