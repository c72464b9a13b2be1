package main

import (
	"fmt"
	"os"

	"github.com/anonto42/yatube/backend/pkg/logger"
)

func main() {
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
