package main

import (
	"github.com/vrp/restappender/cmd"
)

func main() {
	cmd.Execute()
}
