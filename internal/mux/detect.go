package mux

import "os"

// InsideSession reports whether the current process runs inside a tmux
// client, based on the TMUX environment variable tmux sets for its panes.
func InsideSession() bool {
	_, ok := os.LookupEnv("TMUX")
	return ok
}
