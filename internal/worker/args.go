package worker

import (
	"strconv"
)

// Helper command-line flags
const (
	FlagDir                    = "--dir="
	FlagSplit                  = "--split="
	FlagMaxConnectionPerServer = "--max-connection-per-server="
)

// BuildArgs builds the helper invocation. Split and max connections per server
// both take the connection count; the URL is always the last, positional argument.
func BuildArgs(destinationDir string, connections int, url string, extra ...string) []string {
	n := strconv.Itoa(connections)
	args := []string{
		FlagDir + destinationDir,
		FlagSplit + n,
		FlagMaxConnectionPerServer + n,
	}
	args = append(args, extra...)
	return append(args, url)
}
