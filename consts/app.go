package consts

import (
	"os"
	"path/filepath"
)

const (
	VERSION = "0.1.0"

	SourceExt = ".mc"
	ChunkExt  = ".mca"

	ReleaseApiUrl = "https://api.github.com/repos/mcc-lang/mcc/releases/latest"
)

var (
	// Debug turns on logger output. Set MCC_DEBUG to any value.
	Debug = os.Getenv("MCC_DEBUG") != ""

	// MccPath is where the repl history and upgrade cache live.
	// MCC_PATH overrides the default ~/.config/mcc.
	MccPath = func() string {
		if p := os.Getenv("MCC_PATH"); p != "" {
			return p
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, ".config", "mcc")
	}()
)
