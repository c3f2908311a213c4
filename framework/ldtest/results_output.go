package ldtest

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	passColor = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
)

// PrintResults writes a summary of the test run, listing every failed test with its errors.
func PrintResults(out io.Writer, results Results) {
	fmt.Fprintf(out, "Ran %d tests (%d skipped)\n", len(results.Tests), results.SkippedCount())
	if results.OK() {
		passColor.Fprintln(out, "All tests passed")
		return
	}
	failColor.Fprintf(out, "FAILED TESTS (%d):\n", len(results.Failures))
	for _, f := range results.Failures {
		fmt.Fprintf(out, "  * %s\n", f.TestID)
		for _, err := range f.Errors {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Fprintf(out, "      %s\n", line)
			}
		}
	}
}
