package buffer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func BenchmarkBuffer(b *testing.B) {
	buff := New(1024, 4096)
	smallString := []byte(strings.Repeat("a", 1023))

	b.ReportAllocs()
	b.SetBytes(int64(len(smallString)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = buff.Append(smallString)
		buff.Clear()
	}
}

func TestBuffer(t *testing.T) {
	t.Run("no overflow", func(t *testing.T) {
		buff := New(10, 20)
		require.True(t, buff.Append([]byte("Hello")))
		require.True(t, buff.Append([]byte(", world")))
		require.Equal(t, "Hello, world", string(buff.Bytes()))
		require.Equal(t, 12, buff.Len())
		require.Equal(t, 8, buff.Free())
	})

	t.Run("grows beyond initial size", func(t *testing.T) {
		buff := New(2, 20)
		require.True(t, buff.Append([]byte(strings.Repeat("a", 20))))
		require.Zero(t, buff.Free())
	})

	t.Run("overflow", func(t *testing.T) {
		buff := New(10, 10)
		require.True(t, buff.Append([]byte("Hello")))
		require.False(t, buff.Append([]byte("Hello, world")))
		require.Equal(t, "Hello", string(buff.Bytes()))
	})

	t.Run("clear", func(t *testing.T) {
		buff := New(10, 10)
		require.True(t, buff.Append([]byte("Hello")))
		buff.Clear()
		require.Zero(t, buff.Len())
		require.True(t, buff.Append([]byte("Greetings!")))
	})
}
