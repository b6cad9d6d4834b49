package main

import "github.com/frahmantamala/bizmanager/cmd"

func main() {
	cmd.Execute()
}
