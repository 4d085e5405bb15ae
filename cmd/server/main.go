package main

import (
	"os"
)

// main hands off to the cobra command tree. Business logic lives in internal
// service packages; commands only wire dependencies.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
