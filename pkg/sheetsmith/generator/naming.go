package generator

import (
	"regexp"
	"strings"
)

const (
	defaultExcelName = "generated_excel"
	maxExcelNameLen  = 25
	maxSheetTitleLen = 30
	excelNameWords   = 4
)

var (
	invalidNameChars = regexp.MustCompile(`[^a-z0-9_]+`)
	repeatedUnder    = regexp.MustCompile(`_+`)
)

// ExcelName derives a file name from a task description: the first four words,
// lower-cased, reduced to [a-z0-9_], at most 25 characters, with ".xlsx" appended.
func ExcelName(description string) string {
	words := strings.Fields(description)
	if len(words) > excelNameWords {
		words = words[:excelNameWords]
	}

	name := strings.ToLower(strings.Join(words, "_"))
	name = invalidNameChars.ReplaceAllString(name, "")
	name = repeatedUnder.ReplaceAllString(name, "_")
	if len(name) > maxExcelNameLen {
		name = name[:maxExcelNameLen]
	}
	name = strings.Trim(name, "_")

	if name == "" {
		name = defaultExcelName
	}
	return name + ".xlsx"
}

// SheetTitle truncates description to 30 characters and removes the characters
// spreadsheet tab names may not contain.
func SheetTitle(description string) string {
	runes := []rune(description)
	if len(runes) > maxSheetTitleLen {
		runes = runes[:maxSheetTitleLen]
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case ':', '/', '\\', '?', '*', '[', ']':
			return -1
		}
		return r
	}, string(runes))
}
