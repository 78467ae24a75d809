package main

import "activitylog/internal/cli"

func main() {
	cli.Execute()
}
