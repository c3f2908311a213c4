package main

import (
	"fmt"
	"log"
	"os"

	"github.com/launchdarkly/petstore-contract-tests/framework"
	"github.com/launchdarkly/petstore-contract-tests/framework/harness"
	"github.com/launchdarkly/petstore-contract-tests/framework/ldtest"
	"github.com/launchdarkly/petstore-contract-tests/petstoretests"
)

func main() {
	var params commandParams
	if !params.Read(os.Args, os.Stderr) {
		os.Exit(1)
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = framework.LoggerWithPrefix(log.New(os.Stdout, "", log.LstdFlags), "[harness] ")
	}

	testHarness, err := harness.NewTestHarness(
		params.config.BaseURL,
		params.config.RequestTimeout,
		params.config.StatusQueryTimeout,
		mainDebugLogger,
		os.Stdout,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Service error: %s\n", err)
		os.Exit(1)
	}

	fmt.Println()
	ldtest.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running test suite")

	testLogger := &ConsoleTestLogger{
		Out:                  os.Stdout,
		ShowSteps:            params.showSteps,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := petstoretests.RunTestSuite(testHarness, params.filters.AsFilter, testLogger)

	fmt.Println()
	ldtest.PrintResults(os.Stdout, results)
	if !results.OK() {
		fmt.Println()
		fmt.Println("To run only the failed tests again:")
		fmt.Printf("  %s\n", params.rerunCommand(os.Args[0], results.Failures))
		os.Exit(1)
	}
}
