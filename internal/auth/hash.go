// Package auth manages the member roster: login, registration, approval,
// and role changes, all backed by the users sheet.
package auth

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

const passwordSalt = "joy-enter-2025-secure-salt"

// HashPassword reproduces the hash the legacy client stored in the PW
// column, so every existing credential keeps working. The arithmetic runs
// over UTF-16 code units with 32-bit wrapping; changing any of it locks
// every member out.
func HashPassword(password string) string {
	salted := password + passwordSalt

	var h int32
	for _, unit := range utf16.Encode([]rune(salted)) {
		h = h<<5 - h + int32(unit)
	}
	seed := uint32(int64(h) * 31)

	var b strings.Builder
	fmt.Fprintf(&b, "%08x", seed)
	for _, m := range [...]uint64{7, 13, 17, 19, 23, 29, 37} {
		fmt.Fprintf(&b, "%08x", uint32(uint64(seed)*m))
	}
	return b.String()
}
