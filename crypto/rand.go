//
// Documentation Last Review: 12.10.2026
//

package crypto

import (
	"crypto/rand"
	"io"
)

// RandomReader is the cryptographically secure source of randomness shared by
// the signers.
//
// - implements io.Reader
type RandomReader struct{}

// Read implements io.Reader. It fills the given buffer at its capacity as long
// as no error occurred.
func (RandomReader) Read(buffer []byte) (int, error) {
	return io.ReadFull(rand.Reader, buffer)
}
