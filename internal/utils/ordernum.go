package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const orderNumberAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateOrderNumber returns a human-readable order number of the form
// ORD-20060102150405-XXXX. Uniqueness is enforced by the database index;
// callers retry on a duplicate-key error.
func GenerateOrderNumber() string {
	suffix := make([]byte, 4)
	max := big.NewInt(int64(len(orderNumberAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is broken;
			// degrade to a time-derived index rather than aborting checkout.
			n = big.NewInt(time.Now().UnixNano() % int64(len(orderNumberAlphabet)))
		}
		suffix[i] = orderNumberAlphabet[n.Int64()]
	}

	return fmt.Sprintf("ORD-%s-%s", time.Now().UTC().Format("20060102150405"), suffix)
}
