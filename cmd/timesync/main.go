package main

import "github.com/example/timesync/cmd"

func main() {
	cmd.Execute()
}
