// Package main is the entry point for the dreamspinner screensaver.
package main

func main() {
	Execute()
}
