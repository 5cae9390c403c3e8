package main

import "task-manager/internal/cli"

func main() {
	cli.Execute()
}
