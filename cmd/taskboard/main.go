// taskboard is a personal task board with a CLI and a terminal UI.
package main

import "github.com/antopolskiy/taskboard/cmd"

func main() {
	cmd.Execute()
}
