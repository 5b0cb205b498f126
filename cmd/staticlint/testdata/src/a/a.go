package main

import (
	"log"
	"os"
)

func main() {
	defer log.Println("done")
	os.Exit(1) // want "direct os.Exit call in main function"
}

func fail() {
	os.Exit(2)
}
