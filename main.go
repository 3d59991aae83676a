package main

import "github.com/timvw/tmux-sessionizer/cmd"

func main() {
	cmd.Execute()
}
