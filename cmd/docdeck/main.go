// Command docdeck is a document assistant: upload documents, search them,
// ask an AI provider for summaries and insights, and turn text into slides.
package main

import (
	"os"

	"github.com/custodia-labs/docdeck/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
