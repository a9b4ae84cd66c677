package main

import "github.com/encodeous/adcn/cmd"

func main() {
	cmd.Execute()
}
