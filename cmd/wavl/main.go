// Command wavl inspects and decodes RIFF/WAVE files, wave lists included.
package main

import "os"

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
