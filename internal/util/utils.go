package util

import (
	"bytes"
	"fmt"
)

func GetLineAndColumn(src string, pos int) (line int, column int) {
	line = 1
	column = 1
	for i, char := range src {
		if i == pos {
			break
		}
		if char == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return
}

// GetContextLines renders the line holding pos with a caret under the
// offending column.
func GetContextLines(src string, pos int) string {
	var result bytes.Buffer

	errorLine, errorCol := GetLineAndColumn(src, pos)
	lines := bytes.Split([]byte(src), []byte("\n"))
	if errorLine > len(lines) {
		return ""
	}
	lineContent := string(lines[errorLine-1])

	margin := fmt.Sprintf("  >  %3d | ", errorLine)
	result.WriteString(fmt.Sprintf("%s%s\n", margin, lineContent))

	prefix := margin
	col := 1
	for _, c := range lineContent {
		if col >= errorCol {
			break
		}
		prefix += string(c)
		col++
	}
	result.WriteString(fmt.Sprintf("%s^ unexpected here", replaceVisibleWithSpaces(prefix)))
	return result.String()
}

// replaceVisibleWithSpaces replaces all non-whitespace characters with spaces
// while preserving tabs for correct alignment.
func replaceVisibleWithSpaces(s string) string {
	var buf bytes.Buffer
	for _, c := range s {
		if c == '\t' {
			buf.WriteRune('\t')
		} else {
			buf.WriteRune(' ')
		}
	}
	return buf.String()
}
