package main

import "github.com/Manu343726/hasm/cmd"

func main() {
	cmd.Execute()
}
