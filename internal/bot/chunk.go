package bot

import "strings"

// Discord rejects messages over 2000 characters. ChunkLimit leaves a
// margin under that so decorations added near a boundary never tip a
// part over.
const (
	MaxMessageLen = 2000
	ChunkLimit    = 1990
)

// ChunkText splits text into parts no longer than limit characters,
// preferring line boundaries. A single line longer than the limit is
// force-split. Lengths are counted in runes, matching how Discord counts
// Japanese text.
func ChunkText(text string, limit int) []string {
	if limit <= 0 {
		limit = ChunkLimit
	}
	if len([]rune(text)) <= limit {
		return []string{text}
	}

	var parts []string
	var buf strings.Builder
	size := 0

	flush := func() {
		if buf.Len() > 0 {
			parts = append(parts, buf.String())
			buf.Reset()
			size = 0
		}
	}

	for _, line := range splitKeepNewline(text) {
		runes := []rune(line)
		if size+len(runes) > limit {
			flush()
		}
		for len(runes) > limit {
			parts = append(parts, string(runes[:limit]))
			runes = runes[limit:]
		}
		if len(runes) > 0 {
			buf.WriteString(string(runes))
			size += len(runes)
		}
	}
	flush()
	return parts
}

// splitKeepNewline splits text into lines, each keeping its trailing
// newline, so rejoining the chunks reproduces the original text.
func splitKeepNewline(text string) []string {
	var lines []string
	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			if text != "" {
				lines = append(lines, text)
			}
			return lines
		}
		lines = append(lines, text[:i+1])
		text = text[i+1:]
	}
}
