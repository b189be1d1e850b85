// Package shared holds small helpers used by more than one command.
package shared

// WipeByteArray overwrites b with zeros so secrets such as passwords do not
// linger in memory after use. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
