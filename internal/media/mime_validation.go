package media

import (
	"bytes"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// sniffLen matches mimetype's default read limit.
const sniffLen = 3072

var allowedVideoTypes = map[string]struct{}{
	"video/mp4":  {},
	"video/webm": {},
}

// sniff detects the content type from the first bytes of r and returns a
// reader that still yields the full stream.
func sniff(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", nil, err
	}
	head = head[:n]
	detected := mimetype.Detect(head).String()
	mediaType, _, _ := strings.Cut(detected, ";")
	return strings.ToLower(strings.TrimSpace(mediaType)), io.MultiReader(bytes.NewReader(head), r), nil
}

func allowedMime(mediaType string) bool {
	if strings.HasPrefix(mediaType, "image/") {
		return true
	}
	_, ok := allowedVideoTypes[mediaType]
	return ok
}

// SanitizeName keeps [a-zA-Z0-9._-] and replaces everything else with '_'.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := b.String()
	if strings.Trim(out, ".") == "" {
		return "file"
	}
	return out
}
