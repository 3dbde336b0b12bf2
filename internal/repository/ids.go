package repository

import (
	"strings"

	"github.com/google/uuid"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// newBookingID returns "B" followed by six base-36 characters taken from the random
// bytes of a v4 UUID. Collisions are possible; the repository retries on one.
func newBookingID() string {
	u := uuid.New()

	var sb strings.Builder
	sb.Grow(7)
	sb.WriteByte('B')
	for i := 0; i < 6; i++ {
		sb.WriteByte(idAlphabet[int(u[i])%len(idAlphabet)])
	}
	return sb.String()
}
