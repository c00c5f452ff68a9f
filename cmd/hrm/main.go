// Command hrm manages candidates, positions and interviews from the shell.
package main

import "github.com/mesh-intelligence/hrmanager/internal/cli"

func main() {
	cli.Execute()
}
