package transaction

import (
	"crypto/rand"
	"fmt"
	"time"
)

// Document numbers are opaque display tokens; uniqueness matters only within
// the running system and the DB unique index on transaction_id backs it up.

const tokenChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randToken(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		for i := range b {
			b[i] = tokenChars[0]
		}
		return string(b)
	}
	for i := range b {
		b[i] = tokenChars[int(b[i])%len(tokenChars)]
	}
	return string(b)
}

func newTransactionID(now time.Time) string {
	return fmt.Sprintf("TXN%d%02d%s", now.Year(), int(now.Month()), randToken(6))
}

func newReferenceNumber() string {
	return "REF" + randToken(10)
}

func newInvoiceNumber(now time.Time) string {
	return fmt.Sprintf("INV/%d/%02d/%s", now.Year(), int(now.Month()), randToken(6))
}

func newContractNumber(now time.Time) string {
	return fmt.Sprintf("KA-CONTRACT/%d/%02d/%s", now.Year(), int(now.Month()), randToken(4))
}
