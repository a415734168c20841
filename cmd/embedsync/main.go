package main

import "github.com/mvp-joe/embedsync/internal/cli"

func main() {
	cli.Execute()
}
