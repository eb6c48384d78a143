package main

import (
	"fmt"
	"log"
	"path/filepath"
)

// Serial device paths worth probing for a GPS receiver on Linux.
var portGlobs = []string{
	"/dev/ttyUSB*",
	"/dev/ttyACM*",
	"/dev/ttyAMA*",
	"/dev/serial[0-9]*",
	"/dev/serial/by-id/*",
}

func main() {
	log.Println("scanning for serial ports")

	found := 0
	for _, glob := range portGlobs {
		matches, err := filepath.Glob(glob)
		if err != nil {
			log.Printf("bad glob %q: %v", glob, err)
			continue
		}
		for _, m := range matches {
			found++
			fmt.Printf("%d: %s\n", found, m)
		}
	}

	if found == 0 {
		fmt.Println("no serial ports found")
	}
}
