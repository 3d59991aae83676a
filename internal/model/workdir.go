package model

import (
	"fmt"
	"os"
	"strings"
)

// WorkDir is an environment-substituted directory path.
type WorkDir string

// NewWorkDir substitutes environment tokens in raw. The path is split on '/';
// a segment starting with '$' is replaced by that variable and a segment
// equal to "~" is replaced by $HOME. A referenced variable that is not set
// is an error.
func NewWorkDir(raw string) (WorkDir, error) {
	segments := strings.Split(raw, "/")
	for i, seg := range segments {
		switch {
		case strings.HasPrefix(seg, "$"):
			name := seg[1:]
			v, ok := os.LookupEnv(name)
			if !ok {
				return "", fmt.Errorf("%w: variable %q in %q is not set", ErrEnvSubst, name, raw)
			}
			segments[i] = v
		case seg == "~":
			v, ok := os.LookupEnv("HOME")
			if !ok {
				return "", fmt.Errorf("%w: HOME is not set, cannot expand ~ in %q", ErrEnvSubst, raw)
			}
			segments[i] = v
		}
	}
	return WorkDir(strings.Join(segments, "/")), nil
}

// String returns the path.
func (w WorkDir) String() string {
	return string(w)
}
