package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/launchdarkly/petstore-contract-tests/framework"
	"github.com/launchdarkly/petstore-contract-tests/framework/ldtest"

	"github.com/fatih/color"
)

var (
	failedLabel  = color.New(color.FgRed).Sprint("FAILED")
	skippedLabel = color.New(color.FgYellow).Sprint("SKIPPED")
	stepColor    = color.New(color.FgCyan)
)

// ConsoleTestLogger reports test progress as human-readable text.
type ConsoleTestLogger struct {
	Out                  io.Writer
	ShowSteps            bool
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) TestStarted(id ldtest.TestID) {
	fmt.Fprintf(c.Out, "[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id ldtest.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.Out, "  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestFinished(id ldtest.TestID, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		fmt.Fprintf(c.Out, "  %s: %s\n", failedLabel, id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.Out, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id ldtest.TestID, reason string) {
	if reason == "" {
		fmt.Fprintf(c.Out, "  %s: %s\n", skippedLabel, id)
	} else {
		fmt.Fprintf(c.Out, "  %s: %s (%s)\n", skippedLabel, id, reason)
	}
}

func (c *ConsoleTestLogger) StepStarted(id ldtest.TestID, label string) {
	if c.ShowSteps {
		stepColor.Fprintf(c.Out, "  > %s\n", label)
	}
}

func (c *ConsoleTestLogger) StepFinished(id ldtest.TestID, label string, failed bool) {
	if c.ShowSteps && failed {
		fmt.Fprintf(c.Out, "  < %s: %s\n", failedLabel, label)
	}
}
