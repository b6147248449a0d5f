// Command pickit runs, checks and compiles pickit scripts.
package main

func main() {
	Execute()
}
