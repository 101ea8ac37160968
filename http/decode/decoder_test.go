package decode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bare-web/bare/http/form"
	"github.com/bare-web/bare/http/status"
)

func TestClassify(t *testing.T) {
	for _, tc := range []struct {
		ContentType string
		Want        Kind
	}{
		{"application/x-www-form-urlencoded", Form},
		{"Application/X-WWW-Form-Urlencoded; charset=utf-8", Form},
		{"application/json", JSON},
		{"APPLICATION/JSON;charset=utf-8", JSON},
		{"text/plain", Raw},
		{"multipart/form-data; boundary=abc", Raw},
		{"", Raw},
	} {
		require.Equal(t, tc.Want, Classify(tc.ContentType), tc.ContentType)
	}
}

func TestURLEncoded(t *testing.T) {
	t.Run("single", func(t *testing.T) {
		f := URLEncoded([]byte("username=carol"))
		require.Equal(t, form.Form{{Name: "username", Value: "carol"}}, f)
	})

	t.Run("repeated keys make a sequence", func(t *testing.T) {
		f := URLEncoded([]byte("tag=a&name=x&tag=b&tag=c"))
		require.Equal(t, []string{"a", "b", "c"}, f.Values("tag"))
		require.True(t, f.IsMulti("tag"))
		require.False(t, f.IsMulti("name"))
		require.Equal(t, map[string]any{
			"tag":  []string{"a", "b", "c"},
			"name": "x",
		}, f.Map())
	})

	t.Run("percent and plus decoding", func(t *testing.T) {
		f := URLEncoded([]byte("full+name=Carol+D%C3%A9j%C3%A0&q=a%26b%3Dc"))
		name, _ := f.Get("full name")
		require.Equal(t, "Carol Déjà", name)
		q, _ := f.Get("q")
		require.Equal(t, "a&b=c", q)
	})

	t.Run("no value", func(t *testing.T) {
		f := URLEncoded([]byte("flag&other="))
		require.Equal(t, form.Form{{Name: "flag"}, {Name: "other"}}, f)
	})

	t.Run("malformed segments are skipped", func(t *testing.T) {
		f := URLEncoded([]byte("a=%zz&&=novalue&b=2"))
		require.Equal(t, form.Form{{Name: "b", Value: "2"}}, f)
	})

	t.Run("empty", func(t *testing.T) {
		require.Empty(t, URLEncoded(nil))
	})
}

func TestDecode(t *testing.T) {
	t.Run("form", func(t *testing.T) {
		result := Decode("application/x-www-form-urlencoded", []byte("username=carol"))
		require.Equal(t, Form, result.Kind)
		require.NoError(t, result.Err)
		require.Nil(t, result.JSON)
		username, _ := result.Form.Get("username")
		require.Equal(t, "carol", username)
	})

	t.Run("json", func(t *testing.T) {
		result := Decode("application/json", []byte(`{"a": 1, "b": [true, "x"], "c": null}`))
		require.Equal(t, JSON, result.Kind)
		require.NoError(t, result.Err)
		require.Empty(t, result.Form)
		require.Equal(t, map[string]any{
			"a": float64(1),
			"b": []any{true, "x"},
			"c": nil,
		}, result.JSON)
	})

	t.Run("json array", func(t *testing.T) {
		result := Decode("application/json", []byte(`[1, 2]`))
		require.NoError(t, result.Err)
		require.Equal(t, []any{float64(1), float64(2)}, result.JSON)
	})

	t.Run("malformed json recovers into an empty object", func(t *testing.T) {
		for _, body := range []string{`{"a": `, `not json`, `{"a": 1} trailing`} {
			result := Decode("application/json", []byte(body))
			require.Equal(t, JSON, result.Kind, body)
			require.Equal(t, map[string]any{}, result.JSON, body)
			require.ErrorIs(t, result.Err, status.ErrBodyDecode, body)
		}
	})

	t.Run("other content types stay raw", func(t *testing.T) {
		result := Decode("text/plain", []byte("username=carol"))
		require.Equal(t, Raw, result.Kind)
		require.Empty(t, result.Form)
		require.Nil(t, result.JSON)
		require.NoError(t, result.Err)
	})
}
