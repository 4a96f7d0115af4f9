// Command analyze runs a single analysis from the command line and prints the
// normalized chart model, a markdown report, or a rendered chart.
package main

func main() {
	Execute()
}
