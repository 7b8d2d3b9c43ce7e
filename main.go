package main

import "github.com/custodia-labs/ingest-cli/internal/adapters/driving/cli"

func main() {
	cli.Execute()
}
