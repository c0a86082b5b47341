package main

import "github.com/jfmyers9/spotcast/cmd"

func main() {
	cmd.Execute()
}
