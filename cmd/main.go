package main

import cmd "github.com/kerbaras/qari/cmd/qari"

func main() {
	cmd.Execute()
}
