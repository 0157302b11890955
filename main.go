// Command html2md converts web pages into Markdown for AI agents.
package main

import "github.com/gaurav-prasanna/html2md/cmd"

func main() {
	cmd.Execute()
}
