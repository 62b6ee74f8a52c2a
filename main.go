package main

import "github.com/theirongolddev/plateplan/cmd"

func main() {
	cmd.Execute()
}
