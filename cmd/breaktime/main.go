// Command breaktime is a break reminder daemon and its command-line client.
package main

import "github.com/xvierd/breaktime/cmd"

func main() {
	cmd.Execute()
}
