package main

import (
	"github.com/Pradipta/lokapasar/cmd"
)

func main() {
	cmd.Start()
}
