package mux

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/timvw/tmux-sessionizer/internal/model"
)

// ParseSessions parses `tmux list-sessions` output into live session stats.
// Each line has the form "name: N windows (created ...)[ (attached)]".
// Blank lines are skipped. Any malformed line fails the whole listing.
func ParseSessions(output string) (model.Sessions, error) {
	sessions := model.Sessions{}
	for i, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		name, rest, ok := strings.Cut(line, ": ")
		if !ok {
			return nil, fmt.Errorf("%w: line %d %q: missing \": \" separator", model.ErrParse, i+1, line)
		}
		count, rest, ok := strings.Cut(rest, " ")
		if !ok {
			return nil, fmt.Errorf("%w: line %d %q: missing window count", model.ErrParse, i+1, line)
		}
		n, err := strconv.ParseUint(count, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d %q: invalid window count %q: %w", model.ErrParse, i+1, line, count, err)
		}

		sessions[name] = model.SessionStats{
			WindowCount: uint8(n),
			Attached:    strings.Contains(rest, "attached"),
		}
	}
	return sessions, nil
}
