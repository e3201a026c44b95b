// Package main is the entry point for deskline.
package main

func main() {
	Execute()
}
