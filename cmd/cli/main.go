// pcaparser - Windows Program Compatibility Assistant artifact parser
//
// pcaparser converts the PCA text artifacts found in C:\Windows\appcompat\pca
// into CSV reports and a single execution timeline for forensic review.
package main

import (
	"os"

	"github.com/ccollicutt/pcaparser/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
