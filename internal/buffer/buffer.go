package buffer

// Buffer accumulates a byte sequence arriving in pieces, refusing to grow beyond the limit.
// The memory is allocated lazily and grows up to the limit at most.
type Buffer struct {
	memory  []byte
	maxSize int
}

func New(initialSize, maxSize int) *Buffer {
	return &Buffer{
		memory:  make([]byte, 0, min(initialSize, maxSize)),
		maxSize: maxSize,
	}
}

// Append writes data, checking whether the new amount of bytes doesn't exceed the
// limit, otherwise discarding the data and returning false.
func (b *Buffer) Append(data []byte) (ok bool) {
	if len(b.memory)+len(data) > b.maxSize {
		return false
	}

	b.memory = append(b.memory, data...)
	return true
}

// Bytes returns everything written so far. The slice is valid until the next Clear.
func (b *Buffer) Bytes() []byte {
	return b.memory
}

// Len returns the number of bytes written.
func (b *Buffer) Len() int {
	return len(b.memory)
}

// Free returns how many bytes can be written until the limit is hit.
func (b *Buffer) Free() int {
	return b.maxSize - len(b.memory)
}

// Clear just resets the pointers, so old values may be overridden by new ones.
func (b *Buffer) Clear() {
	b.memory = b.memory[:0]
}
