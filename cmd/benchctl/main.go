// Command benchctl imports benchmark sheets and scores requirement text from
// the shell, using the same engine as the HTTP service.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
