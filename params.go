package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/launchdarkly/petstore-contract-tests/config"
	"github.com/launchdarkly/petstore-contract-tests/framework/ldtest"

	"github.com/alessio/shellescape"
)

type commandParams struct {
	config     config.Config
	configPath string
	filters    ldtest.RegexFilters
	showSteps  bool
	debug      bool
	debugAll   bool
}

func (c *commandParams) Read(args []string, errOut io.Writer) bool {
	var serviceURL string
	var requestTimeout time.Duration

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&serviceURL, "url", "", "base URL of the Petstore API, such as http://localhost:8080/api/v3 (default $"+
		config.BaseURLEnvVar+")")
	fs.StringVar(&c.configPath, "config", "", "path of a YAML config file")
	fs.DurationVar(&requestTimeout, "timeout", 0, "timeout for each request to the service")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run, one slash-separated level at a time as in go test -run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) matched against the full test ID to select tests not to run")
	fs.BoolVar(&c.showSteps, "steps", false, "show each step of every test as it runs")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}

	c.config = config.Default()
	if c.configPath != "" {
		cfg, err := config.Load(c.configPath)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return false
		}
		c.config = cfg
	}
	// Flags that were given explicitly take precedence over the config file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "url":
			c.config.BaseURL = serviceURL
		case "timeout":
			c.config.RequestTimeout = requestTimeout
		}
	})

	if err := c.config.Validate(); err != nil {
		fmt.Fprintln(errOut, err)
		fs.Usage()
		return false
	}
	return true
}

// rerunCommand returns a command line that runs only the specified tests again with the same
// service settings.
func (c *commandParams) rerunCommand(program string, failures []ldtest.TestResult) string {
	var cmd commandBuilder
	cmd.add(program, "-url", c.config.BaseURL)
	if c.configPath != "" {
		cmd.add("-config", c.configPath)
	}
	for _, f := range failures {
		cmd.add("-run", ldtest.ExactMatchPattern(f.TestID))
	}
	return cmd.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
