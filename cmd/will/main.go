// Command will runs will demo applications in the terminal and renders them
// headless.
package main

import "github.com/go-will/will/cmd/will/cmd"

func main() {
	cmd.Execute()
}
