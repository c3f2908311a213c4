package ldtest

import (
	"errors"
	"fmt"
	"regexp"
	"runtime/debug"
	"strings"

	"github.com/launchdarkly/petstore-contract-tests/framework"
)

// TestConfiguration contains options for the overall execution of a test suite.
type TestConfiguration struct {
	// Filter is an optional function for determining which tests to run based on their IDs.
	Filter Filter

	// TestLogger receives notifications about tests and steps as they run. If nil, no such
	// notifications are delivered.
	TestLogger TestLogger

	// Context is any object that the domain-specific test code wants to make available to
	// every test through T.Context().
	Context interface{}
}

type environment struct {
	config  TestConfiguration
	results Results
}

// T represents a test scope. It is similar to Go's *testing.T, but works outside of the Go
// test runner, since the tests in this suite are run against a live service by an ordinary
// program.
//
// T implements require.TestingT, so the assert and require packages can be used with it.
type T struct {
	env         *environment
	id          TestID
	debugLogger framework.CapturingLogger
	hasSubtests bool
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
	cleanups    []func()
}

// Run starts a top-level test scope and runs the specified action in it. The action will
// normally call T.Run for each of its subtests. It returns the accumulated results.
func Run(config TestConfiguration, action func(*T)) Results {
	if config.TestLogger == nil {
		config.TestLogger = nullTestLogger{}
	}
	env := &environment{config: config}
	t := &T{env: env}
	t.run(action)
	return env.results
}

func (t *T) run(action func(*T)) {
	defer func() {
		if r := recover(); r != nil {
			t.handlePanic(r, true)
		}
		t.runCleanups()
		// A group is only reported in its own right if something went wrong outside its subtests.
		if len(t.id.Path) == 0 || (t.hasSubtests && !t.failed) {
			return
		}
		result := TestResult{TestID: t.id, Errors: t.errors, Skipped: t.skipped && !t.failed}
		t.env.results.Tests = append(t.env.results.Tests, result)
		if t.failed {
			t.env.results.Failures = append(t.env.results.Failures, result)
		}
	}()

	action(t)
}

func (t *T) handlePanic(r interface{}, withStack bool) {
	if _, ok := r.(*T); ok {
		if t.skipped && !t.failed {
			return
		}
		t.failed = true
		if len(t.errors) == 0 {
			t.addError(errors.New("test failed with no failure message"))
		}
		return
	}
	t.failed = true
	if withStack {
		t.addError(fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack())))
	} else {
		t.addError(fmt.Errorf("unexpected panic in test: %+v", r))
	}
}

func (t *T) addError(err error) {
	t.errors = append(t.errors, err)
	t.env.config.TestLogger.TestError(t.id, err)
}

func (t *T) runCleanups() {
	for len(t.cleanups) > 0 {
		last := len(t.cleanups) - 1
		cleanup := t.cleanups[last]
		t.cleanups = t.cleanups[:last]
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.handlePanic(r, false)
				}
			}()
			cleanup()
		}()
	}
}

// ID returns the unique identifier of this test scope.
func (t *T) ID() TestID {
	return t.id
}

// Context returns the value that was passed in TestConfiguration.Context.
func (t *T) Context() interface{} {
	return t.env.config.Context
}

// Run runs a subtest in its own scope. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	id := t.id.Plus(name)
	t.hasSubtests = true

	t.env.config.TestLogger.TestStarted(id)
	if t.env.config.Filter != nil && !t.env.config.Filter(id) {
		t.env.results.Tests = append(t.env.results.Tests, TestResult{TestID: id, Skipped: true})
		t.env.config.TestLogger.TestSkipped(id, "excluded by filter parameters")
		return
	}
	t1 := &T{
		id:  id,
		env: t.env,
	}
	t1.run(action)
	if t1.skipped && !t1.failed {
		t.env.config.TestLogger.TestSkipped(id, t1.skipReason)
	} else {
		t.env.config.TestLogger.TestFinished(id, t1.failed, t1.debugLogger.Output())
	}
}

// Step runs an action as a labeled step of the current test. The test logger is told when the
// step begins, and is always told when it ends, whether the action completed, failed an
// assertion, or panicked.
func (t *T) Step(label string, action func()) {
	t.env.config.TestLogger.StepStarted(t.id, label)
	t.debugLogger.Printf("step started: %s", label)
	completed := false
	defer func() {
		failed := t.failed || (!completed && !t.skipped)
		if failed {
			t.debugLogger.Printf("step failed: %s", label)
		} else {
			t.debugLogger.Printf("step finished: %s", label)
		}
		t.env.config.TestLogger.StepFinished(t.id, label, failed)
	}()
	action()
	completed = true
}

// Defer schedules a function to be called when this test scope exits, whether it passed or
// failed. Deferred functions run in reverse order of registration, like Go's defer.
func (t *T) Defer(cleanup func()) {
	t.cleanups = append(t.cleanups, cleanup)
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.failed = true
	err := reformatError(fmt.Errorf(format, args...))
	t.errors = append(t.errors, err)
	t.env.config.TestLogger.TestError(t.id, err)
}

// FailNow causes the test to immediately exit. The methods in the require package call it.
func (t *T) FailNow() {
	t.failed = true
	panic(t)
}

// Failed returns true if the test has had any failures so far.
func (t *T) Failed() bool {
	return t.failed
}

// Skip causes the test to immediately exit and be reported as skipped.
func (t *T) Skip() {
	t.skipped = true
	panic(t)
}

// SkipWithReason is the same as Skip, but provides a message to show in the test output.
func (t *T) SkipWithReason(reason string) {
	t.skipReason = reason
	t.Skip()
}

// Debug adds a message to the test's debug output. That output is passed to the test logger
// when the test finishes.
func (t *T) Debug(message string, args ...interface{}) {
	t.debugLogger.Printf(message, args...)
}

// DebugLogger returns a Logger that writes to the test's debug output.
func (t *T) DebugLogger() framework.Logger {
	return &t.debugLogger
}

var testifyLabelRegex = regexp.MustCompile(`^\s*([A-Z][A-Za-z ]*):\s`)

// reformatError strips the stack-trace section that testify puts at the start of every
// assertion message, since it only ever points into this package.
func reformatError(err error) error {
	s := strings.TrimSpace(err.Error())
	if !strings.HasPrefix(s, "Error Trace:") {
		return err
	}
	var lines []string
	inTrace := false
	for _, line := range strings.Split(s, "\n") {
		if m := testifyLabelRegex.FindStringSubmatch(line); m != nil {
			inTrace = m[1] == "Error Trace" || m[1] == "Test"
		}
		if !inTrace {
			lines = append(lines, strings.TrimLeft(line, "\t "))
		}
	}
	return errors.New(strings.Join(lines, "\n"))
}
