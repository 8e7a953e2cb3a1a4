package logger

import (
	"fmt"
	"os"

	"github.com/mcc-lang/mcc/consts"
)

// Debug-gated diagnostics, written to stderr.

func I(fm string, a ...any) {
	emit("INFO", fm, a)
}

func W(fm string, a ...any) {
	emit("WARN", fm, a)
}

func E(fm string, a ...any) {
	emit("ERROR", fm, a)
}

func emit(tag, fm string, a []any) {
	if !consts.Debug {
		return
	}
	fmt.Fprintf(os.Stderr, "["+tag+"] "+fm+"\n", a...)
}
