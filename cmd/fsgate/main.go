// fsgate serves list and read access to files confined to an allow-list of
// directories, over the Model Context Protocol.
package main

import "github.com/ppiankov/fsgate/internal/cli"

func main() {
	cli.Execute()
}
