package mdview

import "strings"

// StripFrontMatter removes a YAML (---), TOML (+++) or JSON (;;;) front
// matter block from the start of text. The block is only recognized when
// its first line after the opening delimiter looks like metadata and a
// matching closing delimiter exists; otherwise text is returned as is.
func StripFrontMatter(text string) string {
	open, pos := cutLine(text, 0)
	delim, ok := frontMatterDelimiter(open)
	if !ok || pos >= len(text) {
		return text
	}
	first, _ := cutLine(text, pos)
	if !frontMatterMetadataLikely(first) {
		return text
	}
	for pos < len(text) {
		line, next := cutLine(text, pos)
		if strings.TrimSpace(line) == delim {
			return text[next:]
		}
		pos = next
	}
	return text
}

func cutLine(s string, start int) (string, int) {
	i := strings.IndexByte(s[start:], '\n')
	if i < 0 {
		return strings.TrimSuffix(s[start:], "\r"), len(s)
	}
	return strings.TrimSuffix(s[start:start+i], "\r"), start + i + 1
}

func frontMatterDelimiter(line string) (string, bool) {
	switch trimmed := strings.TrimSpace(line); trimmed {
	case "---", "+++", ";;;":
		return trimmed, true
	default:
		return "", false
	}
}

func frontMatterMetadataLikely(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return true
	}
	return strings.ContainsAny(trimmed, ":=")
}
