package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm prints a yes/no prompt and reads one line from in. Only "y" and
// "yes" (case-insensitive) count as confirmation; EOF or anything else is a
// refusal.
func Confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprint(out, WarningStyle.Render(question+" [y/N] "))
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
