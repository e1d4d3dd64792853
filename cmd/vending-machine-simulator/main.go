// Package main runs the vending machine simulator from the command line.
package main

func main() {
	Execute()
}
