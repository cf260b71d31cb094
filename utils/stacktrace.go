package utils

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Takes the stacktrace from stack and formats it in a nicely indented way (starting with newline):
// 	Stacktrace:
//		| goroutine 42 [running]:
//		| go-shellprops/propwalk.(*Walker).processFile(0xc0001b2460, 0xc001e39740, 0x2a, 0xc0003063a0)
//		| 	C:/workplace/go/src/go-shellprops/propwalk/propwalk.go:312 +0x2ac
//		| created by go-shellprops/propwalk.(*Walker).run
//		| 	C:/workplace/go/src/go-shellprops/propwalk/propwalk.go:188 +0xb28
func StacktraceIndented(indent string) string {

	// Get stacktrace
	trace := strings.Trim(string(debug.Stack()), "\n")

	// Return stacktrace formatted with intents
	return fmt.Sprintf(
		"\n%sStacktrace:\n%s\t| %s",
		indent,
		indent,
		strings.Replace(trace, "\n", "\n\t\t| ", -1),
	)
}
