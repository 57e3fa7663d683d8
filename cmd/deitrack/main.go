// cmd/deitrack/main.go
package main

import (
	"github.com/hied-data/deitrack/internal/cli"
)

func main() {
	// Signal handling lives in the scrape command so an interrupt still
	// exports the records collected so far.
	cli.Execute()
}
