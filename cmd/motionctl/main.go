package main

import (
	"os"

	"motiond/internal/motionctl"
)

func main() { os.Exit(motionctl.Main()) }
