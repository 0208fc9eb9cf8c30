// Command vdomctl renders description documents and reports the host
// mutations a re-render performs.
package main

import "github.com/go-drift/vdom/cmd/vdomctl/cmd"

func main() {
	cmd.Execute()
}
