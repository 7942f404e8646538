// cssparse tokenizes, parses and checks CSS3 style sheets.
package main

import "github.com/benbjohnson/css3/internal/cmd"

func main() {
	cmd.Execute()
}
