package mime

import (
	"path/filepath"
	"strings"
)

var Extension = map[string]MIME{
	".avif":  AVIF,
	".css":   CSS,
	".csv":   CSV,
	".gif":   GIF,
	".htm":   HTML,
	".html":  HTML,
	".jpeg":  JPEG,
	".jpg":   JPEG,
	".js":    JS,
	".mjs":   JS,
	".json":  JSON,
	".md":    Markdown,
	".mp4":   MP4,
	".pdf":   PDF,
	".png":   PNG,
	".svg":   SVG,
	".txt":   Plain,
	".wasm":  WASM,
	".webp":  WEBP,
	".woff2": WOFF2,
	".xml":   XML,
	".yaml":  YAML,
	".yml":   YAML,
	".gz":    GZIP,
	".zip":   ZIP,
	".ico":   ICO,
}

// Guess returns the MIME type by the file extension, falling back to OctetStream for
// unknown ones. Extensions are matched case-insensitively.
func Guess(path string) MIME {
	if m, found := Extension[strings.ToLower(filepath.Ext(path))]; found {
		return m
	}

	return OctetStream
}
