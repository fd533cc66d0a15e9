package main

import "github.com/racelap/timing-ingest-go/cmd"

func main() {
	cmd.Execute()
}
