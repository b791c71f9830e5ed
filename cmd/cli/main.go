package main

import (
	"fmt"
	"os"

	_ "github.com/cyberpeers/cyberpeers-server/cmd/cli/admin"
	"github.com/cyberpeers/cyberpeers-server/cmd/cli/root"
	_ "github.com/cyberpeers/cyberpeers-server/cmd/cli/session"
	_ "github.com/cyberpeers/cyberpeers-server/cmd/cli/users"
)

func main() {
	if err := root.GetRoot().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
