package config

import (
	"time"
)

type (
	HeadersNumber struct {
		Default, Maximal int
	}
)

type (
	URI struct {
		// ParamsPrealloc for http.Request.Params field.
		ParamsPrealloc int
	}

	Headers struct {
		// Number is responsible for headers storage size.
		// Default value is an initial size of allocated headers storage.
		// Maximal value is maximum number of headers allowed to be presented
		Number HeadersNumber
		// MaxSize limits the whole header block, including the request line and the blank
		// line terminating it. Exceeding it fails the request as malformed.
		MaxSize int
	}

	Body struct {
		// MaxSize describes the maximal size of a body, that can be processed. Requests
		// declaring a bigger Content-Length are rejected without reading the body.
		MaxSize uint64
	}

	NET struct {
		// ReadBufferSize is a size of buffer in bytes which will be used to read from
		// socket
		ReadBufferSize int
		// ReadTimeout controls how long a single read may block. A silent client is
		// disconnected after it expires. Zero disables the deadline.
		ReadTimeout time.Duration `test:"nullable"`
		// AcceptLoopInterruptPeriod controls how often will the Accept() call be interrupted
		// in order to check whether it's time to stop. Defaults to 5 seconds.
		AcceptLoopInterruptPeriod time.Duration
		// LingerTimeout limits how long the input left unread after an error response is
		// drained before closing the connection. Closing with unread input resets the
		// connection, and the peer may lose the response.
		LingerTimeout time.Duration
		// LingerSize limits how many bytes are drained.
		LingerSize int64
	}

	Static struct {
		// Prefix is the request path prefix served from the Root. Must start and end with
		// a slash.
		Prefix string
		// Root is the directory files are served from.
		Root string
		// ChunkSize is the size of a single read from a file while streaming it to the client.
		ChunkSize int
		// CacheControl is the value of the Cache-Control header attached to files.
		CacheControl string
	}
)

// Config holds settings used across various parts of the server, mainly restrictions,
// limitations and pre-allocations.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	URI     URI
	Headers Headers
	Body    Body
	NET     NET
	Static  Static
}

// Default returns default config.
func Default() *Config {
	return &Config{
		URI: URI{
			ParamsPrealloc: 5,
		},
		Headers: Headers{
			Number: HeadersNumber{
				Default: 10,
				Maximal: 100,
			},
			MaxSize: 64 * 1024,
		},
		Body: Body{
			MaxSize: 8 * 1024 * 1024, // 8 megabytes
		},
		NET: NET{
			ReadBufferSize:            4 * 1024,
			ReadTimeout:               90 * time.Second,
			AcceptLoopInterruptPeriod: 5 * time.Second,
			LingerTimeout:             time.Second,
			LingerSize:                64 * 1024,
		},
		Static: Static{
			Prefix:       "/static/",
			Root:         "./static",
			ChunkSize:    16 * 1024,
			CacheControl: "public, max-age=3600",
		},
	}
}
