package match

import (
	"strings"

	"github.com/dren-arifi/isrcfind/internal/models"
)

// ParseDescription extracts structured credit fields from a free-text video
// description.
//
// The parser is total: it never fails, and unrecognized input yields a record
// with empty credit fields and ISRC/UPC set to [models.NA]. Each non-blank
// line is matched against known prefixes (case-insensitive); the field value
// is the text after the first colon of the original line, or the whole line
// when no colon is present. When several lines match the same field, the last
// one wins. ISRC and UPC are scanned independently of the prefix rules, so
// "Code ISRC: XYZ" mid-line still matches.
func ParseDescription(description string) models.DescriptionRecord {
	record := models.DescriptionRecord{ISRC: models.NA, UPC: models.NA}

	for _, raw := range strings.Split(description, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		switch {
		case strings.HasPrefix(lower, "music") && strings.Contains(lower, "produced"):
			record.MusicProduced = fieldValue(line)
		case strings.HasPrefix(lower, "text"):
			record.Text = fieldValue(line)
		case strings.HasPrefix(lower, "video"):
			record.Video = fieldValue(line)
		case strings.HasPrefix(lower, "special guest"):
			record.SpecialGuest = fieldValue(line)
		case strings.HasPrefix(lower, "thanks to"):
			record.ThanksTo = fieldValue(line)
		case strings.HasPrefix(lower, "publisher"):
			record.Publisher = fieldValue(line)
		case strings.HasPrefix(lower, "licensing"):
			record.Licensing = fieldValue(line)
		}

		if value, ok := tokenValue(line, lower, "isrc"); ok {
			record.ISRC = value
		}
		if value, ok := tokenValue(line, lower, "upc"); ok {
			record.UPC = value
		}
	}

	return record
}

// fieldValue returns the text after the first colon of line, trimmed, or the
// whole trimmed line when no colon is present.
func fieldValue(line string) string {
	if idx := strings.Index(line, ":"); idx >= 0 {
		return strings.TrimSpace(line[idx+1:])
	}
	return strings.TrimSpace(line)
}

// tokenValue extracts the text following token (e.g. "isrc") within line,
// with the first following colon stripped. The lower argument is the
// pre-lowered line, used only to locate the token case-insensitively.
func tokenValue(line, lower, token string) (string, bool) {
	idx := strings.Index(lower, token)
	if idx < 0 {
		return "", false
	}

	rest := line[idx+len(token):]
	if colon := strings.Index(rest, ":"); colon >= 0 {
		rest = rest[colon+1:]
	}

	value := strings.TrimSpace(rest)
	if value == "" {
		return "", false
	}
	return value, true
}
