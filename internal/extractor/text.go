package extractor

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// cleanText normalises extracted text before it is sent to the model:
// compatibility forms are folded (ligatures, full-width digits), line
// endings unified, NULs dropped and blank lines removed.
func cleanText(text string) string {
	text = norm.NFKC.String(text)

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\x00", "")

	lines := strings.Split(text, "\n")

	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
