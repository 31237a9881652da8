// This program talks to the public API of a node.
package main

import "github.com/ardanlabs/powchain/app/tooling/client/cmd"

func main() {
	cmd.Execute()
}
