package mime

import (
	"github.com/indigo-web/utils/strcomp"

	"github.com/bare-web/bare/internal/strutil"
)

type MIME = string

const (
	OctetStream    MIME = "application/octet-stream"
	Plain          MIME = "text/plain"
	HTML           MIME = "text/html"
	XML            MIME = "text/xml"
	JSON           MIME = "application/json"
	YAML           MIME = "application/yaml"
	PDF            MIME = "application/pdf"
	FormUrlencoded MIME = "application/x-www-form-urlencoded"
	Multipart      MIME = "multipart/form-data"
	ZIP            MIME = "application/zip"
	GZIP           MIME = "application/gzip"
	AVIF           MIME = "image/avif"
	CSS            MIME = "text/css"
	CSV            MIME = "text/csv"
	Markdown       MIME = "text/markdown"
	GIF            MIME = "image/gif"
	JPEG           MIME = "image/jpeg"
	PNG            MIME = "image/png"
	SVG            MIME = "image/svg+xml"
	ICO            MIME = "image/vnd.microsoft.icon"
	WEBP           MIME = "image/webp"
	JS             MIME = "text/javascript"
	WASM           MIME = "application/wasm"
	WOFF2          MIME = "font/woff2"
	MP4            MIME = "video/mp4"
)

// Is tells whether the Content-Type header value denotes the MIME. Comparison is
// case-insensitive and parameters after semicolon are ignored. Empty value complies
// with nothing.
func Is(mime MIME, contentType string) bool {
	value, _ := strutil.CutHeader(contentType)
	value = strutil.StripWS(value)

	return len(value) > 0 && strcomp.EqualFold(value, mime)
}
