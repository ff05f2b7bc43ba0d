package downloader

import (
	"regexp"
	"strings"
)

const (
	fallbackBaseName = "video"
	maxBaseNameRunes = 100
)

var unsafeFilenameChars = regexp.MustCompile(`[^\p{L}\p{N}_\- .]`)

// FileName builds the attachment name offered to the client for a title.
func FileName(title string) string {
	base := strings.ReplaceAll(strings.TrimSpace(title), "\n", " ")
	if base == "" {
		base = fallbackBaseName
	}

	if runes := []rune(base); len(runes) > maxBaseNameRunes {
		base = string(runes[:maxBaseNameRunes])
	}

	return unsafeFilenameChars.ReplaceAllString(base, "_") + "." + Container
}
