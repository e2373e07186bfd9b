package main

import (
	"fmt"
	"io"
	"runtime"
)

// Release info, stamped with -ldflags "-X main.Version=... -X main.Commit=...".
// Local builds keep the placeholders.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func printVersion(w io.Writer) {
	info := fmt.Sprintf("typelang %s %s/%s", Version, runtime.GOOS, runtime.GOARCH)
	if Commit != "unknown" {
		info += " commit " + Commit
	}
	if BuildDate != "unknown" {
		info += " built " + BuildDate
	}
	fmt.Fprintln(w, info)
}
