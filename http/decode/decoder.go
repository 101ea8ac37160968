// Package decode turns a raw request body into structured data according to its
// Content-Type.
package decode

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"

	"github.com/bare-web/bare/http/form"
	"github.com/bare-web/bare/http/mime"
	"github.com/bare-web/bare/http/status"
	"github.com/bare-web/bare/internal/urlencoded"
)

var errIncomplete = errors.New("incomplete JSON value")

type Kind uint8

const (
	// Raw bodies are left undecoded. Handlers use the bytes directly.
	Raw Kind = iota
	Form
	JSON
)

// Result holds whatever was decoded out of the body. Only the field corresponding to the
// Kind is ever populated.
type Result struct {
	Kind Kind
	Form form.Form
	JSON any
	// Err holds the decoding error the decoder recovered from. JSON syntax errors end up
	// here while JSON is set to an empty object.
	Err error
}

// Classify picks the decoding method out of a Content-Type header value.
func Classify(contentType string) Kind {
	switch {
	case mime.Is(mime.FormUrlencoded, contentType):
		return Form
	case mime.Is(mime.JSON, contentType):
		return JSON
	default:
		return Raw
	}
}

// Decode decodes the body according to the content type. It never fails: malformed
// pieces of a form are skipped, and malformed JSON results in an empty object with
// the error preserved in Result.Err.
func Decode(contentType string, body []byte) Result {
	switch kind := Classify(contentType); kind {
	case Form:
		return Result{Kind: kind, Form: URLEncoded(body)}
	case JSON:
		value, err := JSONValue(body)
		return Result{Kind: kind, JSON: value, Err: err}
	default:
		return Result{Kind: Raw}
	}
}

// URLEncoded parses an application/x-www-form-urlencoded body. Repeated keys are
// all kept, each as a separate entry. Segments failing to percent-decode are skipped,
// same as empty ones.
func URLEncoded(body []byte) form.Form {
	var f form.Form

	for len(body) > 0 {
		var segment []byte
		segment, body, _ = bytes.Cut(body, []byte{'&'})
		if len(segment) == 0 {
			continue
		}

		rawKey, rawValue, _ := bytes.Cut(segment, []byte{'='})
		key, err := urlencoded.ExtendedDecodeString(uf.B2S(rawKey))
		if err != nil || len(key) == 0 {
			continue
		}

		value, err := urlencoded.ExtendedDecodeString(uf.B2S(rawValue))
		if err != nil {
			continue
		}

		f = append(f, form.Data{Name: key, Value: value})
	}

	return f
}

// JSONValue unmarshalls the body into a generic value. On a syntax error an empty
// object is returned alongside the error wrapped into status.ErrBodyDecode.
func JSONValue(body []byte) (any, error) {
	var value any
	api := json.ConfigCompatibleWithStandardLibrary
	err := api.Unmarshal(body, &value)
	if err == nil && !api.Valid(body) {
		// the iterator may treat an abruptly ended input as a complete one
		err = errIncomplete
	}

	if err != nil {
		return map[string]any{}, fmt.Errorf("%w: %v", status.ErrBodyDecode, err)
	}

	return value, nil
}
