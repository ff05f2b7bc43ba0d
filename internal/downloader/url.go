package downloader

import (
	"regexp"
	"strings"
)

var (
	shortsURLRegex = regexp.MustCompile(`https?://(?:www\.)?youtube\.com/shorts/([\w-]{6,})`)
	watchURLRegex  = regexp.MustCompile(`https?://(?:www\.)?(?:youtube\.com/watch\?v=|youtu\.be/)[\w-]{6,}`)
)

// CleanURL reduces a pasted link to the canonical watch URL it contains.
// Shorts links are rewritten to watch form; watch and youtu.be links lose any
// trailing parameters. Anything else comes back trimmed but otherwise as-is.
func CleanURL(raw string) string {
	text := strings.TrimSpace(raw)

	if m := shortsURLRegex.FindStringSubmatch(text); len(m) > 1 {
		return watchURLForID(m[1])
	}
	if m := watchURLRegex.FindString(text); m != "" {
		return m
	}
	return text
}

func watchURLForID(id string) string {
	if id == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + id
}
