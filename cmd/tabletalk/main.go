package main

import "github.com/tabletalk-hackathon/tabletalk/internal/cli"

func main() {
	cli.Execute()
}
