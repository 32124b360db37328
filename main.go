package main

import "github.com/IronJam11/injective-hack/cmd"

func main() {
	cmd.Execute()
}
