package http1

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bare-web/bare/config"
	"github.com/bare-web/bare/http"
	"github.com/bare-web/bare/http/status"
	"github.com/bare-web/bare/internal/buffer"
)

func getParser(cfg *config.Config) (*Parser, *http.Request) {
	request := http.NewRequest(cfg, http.NewResponse(), nil)
	head := buffer.New(cfg.NET.ReadBufferSize, cfg.Headers.MaxSize)

	return NewParser(cfg, request, head), request
}

func parseAll(t *testing.T, parser *Parser, data string) (extra []byte, err error) {
	done, extra, err := parser.Parse([]byte(data))
	require.True(t, done, "the head must be complete")

	return extra, err
}

func TestParser(t *testing.T) {
	t.Run("simple GET", func(t *testing.T) {
		parser, request := getParser(config.Default())
		extra, err := parseAll(t, parser, "GET /search?q=go&lang=en HTTP/1.1\r\nHost: localhost\r\nAccept: */*\r\n\r\n")
		require.NoError(t, err)
		require.Empty(t, extra)
		require.Equal(t, "GET", request.Method)
		require.Equal(t, "/search", request.Path)
		require.Equal(t, "q=go&lang=en", request.Query)
		require.Equal(t, "HTTP/1.1", request.Protocol)
		require.Equal(t, "go", request.Params.Value("q"))
		require.Equal(t, "en", request.Params.Value("lang"))
		require.Equal(t, "localhost", request.Headers.Value("host"))
		require.Equal(t, "*/*", request.Headers.Value("ACCEPT"))
	})

	t.Run("byte by byte", func(t *testing.T) {
		parser, request := getParser(config.Default())
		raw := "POST /login HTTP/1.1\r\nContent-Type: application/x-www-form-urlencoded\r\nContent-Length: 14\r\n\r\n"

		for i := 0; i < len(raw)-1; i++ {
			done, _, err := parser.Parse([]byte{raw[i]})
			require.NoError(t, err)
			require.False(t, done, "finished too early at byte %d", i)
		}

		done, extra, err := parser.Parse([]byte{raw[len(raw)-1]})
		require.NoError(t, err)
		require.True(t, done)
		require.Empty(t, extra)
		require.Equal(t, "POST", request.Method)
		require.Equal(t, "/login", request.Path)
		require.Equal(t, "application/x-www-form-urlencoded", request.ContentType)
		require.Equal(t, "14", request.Headers.Value("Content-Length"))
	})

	t.Run("bytes past the head", func(t *testing.T) {
		parser, _ := getParser(config.Default())
		done, extra, err := parser.Parse([]byte("POST / HTTP/1.1\r\nContent-Length: 5\r\n\r\nhel"))
		require.NoError(t, err)
		require.True(t, done)
		require.Equal(t, "hel", string(extra))
	})

	t.Run("terminator split between reads", func(t *testing.T) {
		parser, request := getParser(config.Default())
		done, _, err := parser.Parse([]byte("GET / HTTP/1.1\r\nHost: a\r\n\r"))
		require.NoError(t, err)
		require.False(t, done)
		done, extra, err := parser.Parse([]byte("\nbody"))
		require.NoError(t, err)
		require.True(t, done)
		require.Equal(t, "body", string(extra))
		require.Equal(t, "a", request.Headers.Value("Host"))
	})

	t.Run("bare LF", func(t *testing.T) {
		parser, request := getParser(config.Default())
		_, err := parseAll(t, parser, "GET /about HTTP/1.0\nHost: localhost\n\n")
		require.NoError(t, err)
		require.Equal(t, "/about", request.Path)
		require.Equal(t, "HTTP/1.0", request.Protocol)
		require.Equal(t, "localhost", request.Headers.Value("Host"))
	})

	t.Run("headers", func(t *testing.T) {
		parser, request := getParser(config.Default())
		_, err := parseAll(t, parser,
			"GET / HTTP/1.1\r\n"+
				"  X-Padded  :   value with spaces  \r\n"+
				"no colon here\r\n"+
				"X-Dup: first\r\n"+
				"x-dup: second\r\n"+
				"X-Empty:\r\n"+
				"X-Colons: a:b:c\r\n"+
				": no key\r\n"+
				"\r\n",
		)
		require.NoError(t, err)
		require.Equal(t, "value with spaces", request.Headers.Value("x-padded"))
		require.Equal(t, "second", request.Headers.Value("X-Dup"))
		require.Equal(t, []string{"second"}, slices.Collect(request.Headers.Values("X-Dup")))
		require.True(t, request.Headers.Has("X-Empty"))
		require.Equal(t, "a:b:c", request.Headers.Value("X-Colons"))
		require.Equal(t, 4, request.Headers.Len())

		var keys []string
		for key, value := range request.Headers.Pairs() {
			keys = append(keys, key+"="+value)
		}
		require.Equal(t, []string{"X-Padded=value with spaces", "x-dup=second", "X-Empty=", "X-Colons=a:b:c"}, keys)
	})

	t.Run("query", func(t *testing.T) {
		parser, request := getParser(config.Default())
		_, err := parseAll(t, parser, "GET /?a=1&flag&c=x%20y&a=2&d==e HTTP/1.1\r\n\r\n")
		require.NoError(t, err)
		require.Equal(t, "/", request.Path)
		require.Equal(t, "2", request.Params.Value("a"))
		require.False(t, request.Params.Has("flag"))
		require.Equal(t, "x%20y", request.Params.Value("c"))
		require.Equal(t, "=e", request.Params.Value("d"))
	})

	t.Run("empty query", func(t *testing.T) {
		parser, request := getParser(config.Default())
		_, err := parseAll(t, parser, "GET /static/a.css? HTTP/1.1\r\n\r\n")
		require.NoError(t, err)
		require.Equal(t, "/static/a.css", request.Path)
		require.True(t, request.Params.Empty())
	})

	t.Run("malformed request line", func(t *testing.T) {
		for _, raw := range []string{
			"GET /\r\n\r\n",
			"GET\r\n\r\n",
			"GET  / HTTP/1.1\r\n\r\n",
			"GET / HTTP/1.1 trailing\r\n\r\n",
			"GET / \r\n\r\n",
			"\r\n\r\n",
			"garbage\n\n",
		} {
			parser, _ := getParser(config.Default())
			_, err := parseAll(t, parser, raw)
			require.ErrorIs(t, err, status.ErrMalformedRequestLine, raw)
			require.True(t, status.NoResponse(err))
		}
	})

	t.Run("too large head", func(t *testing.T) {
		cfg := config.Default()
		cfg.Headers.MaxSize = 64
		parser, request := getParser(cfg)
		raw := "GET / HTTP/1.1\r\nX-Long: " + strings.Repeat("a", 100) + "\r\n\r\n"
		done, _, err := parser.Parse([]byte(raw))
		require.True(t, done)
		require.ErrorIs(t, err, status.ErrHeaderFieldsTooLarge)
		require.Equal(t, "GET", request.Method)
		require.Equal(t, "/", request.Path)
	})

	t.Run("too large request line", func(t *testing.T) {
		cfg := config.Default()
		cfg.Headers.MaxSize = 64
		parser, _ := getParser(cfg)
		done, _, err := parser.Parse([]byte("GET /" + strings.Repeat("a", 100) + " HTTP/1.1\r\n\r\n"))
		require.True(t, done)
		require.ErrorIs(t, err, status.ErrMalformedRequestLine)
	})

	t.Run("head fitting exactly into the limit", func(t *testing.T) {
		raw := "GET / HTTP/1.1\r\nHost: localhost\r\n\r\n"
		cfg := config.Default()
		cfg.Headers.MaxSize = len(raw)
		parser, request := getParser(cfg)
		done, extra, err := parser.Parse([]byte(raw + "trailing body"))
		require.NoError(t, err)
		require.True(t, done)
		require.Equal(t, "trailing body", string(extra))
		require.Equal(t, "localhost", request.Headers.Value("Host"))
	})

	t.Run("too many headers", func(t *testing.T) {
		cfg := config.Default()
		cfg.Headers.Number.Maximal = 2
		parser, _ := getParser(cfg)
		_, err := parseAll(t, parser, "GET / HTTP/1.1\r\nA: 1\r\nB: 2\r\nC: 3\r\n\r\n")
		require.ErrorIs(t, err, status.ErrHeaderFieldsTooLarge)
	})
}

func TestParserFinish(t *testing.T) {
	t.Run("headers up to the end of input", func(t *testing.T) {
		parser, request := getParser(config.Default())
		done, _, err := parser.Parse([]byte("GET /about?x=1 HTTP/1.1\r\nHost: x\r\nAccept: */*"))
		require.NoError(t, err)
		require.False(t, done)
		require.True(t, parser.Pending())

		require.NoError(t, parser.Finish())
		require.Equal(t, "/about", request.Path)
		require.Equal(t, "1", request.Params.Value("x"))
		require.Equal(t, "x", request.Headers.Value("Host"))
		require.Equal(t, "*/*", request.Headers.Value("Accept"))
	})

	t.Run("request line only", func(t *testing.T) {
		parser, request := getParser(config.Default())
		_, _, err := parser.Parse([]byte("GET / HTTP/1.1"))
		require.NoError(t, err)
		require.NoError(t, parser.Finish())
		require.Equal(t, "GET", request.Method)
		require.Zero(t, request.Headers.Len())
	})

	t.Run("nothing received", func(t *testing.T) {
		parser, _ := getParser(config.Default())
		require.False(t, parser.Pending())
		require.ErrorIs(t, parser.Finish(), status.ErrMalformedRequestLine)
	})

	t.Run("truncated request line", func(t *testing.T) {
		parser, _ := getParser(config.Default())
		_, _, err := parser.Parse([]byte("GET /ab"))
		require.NoError(t, err)
		require.ErrorIs(t, parser.Finish(), status.ErrMalformedRequestLine)
	})
}
