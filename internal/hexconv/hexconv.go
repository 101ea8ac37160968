package hexconv

// Halfbyte maps an ASCII hex digit onto its value. Every other byte maps onto 0xFF, so
// OR-ing two looked up values and comparing against 0x0F detects an invalid pair.
var Halfbyte = func() (table [256]byte) {
	for i := range table {
		table[i] = 0xFF
	}

	for c := '0'; c <= '9'; c++ {
		table[c] = byte(c - '0')
	}

	for c := 'a'; c <= 'f'; c++ {
		table[c] = byte(c-'a') + 10
		table[c-'a'+'A'] = byte(c-'a') + 10
	}

	return table
}()
