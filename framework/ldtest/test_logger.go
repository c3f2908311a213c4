package ldtest

import "github.com/launchdarkly/petstore-contract-tests/framework"

// TestLogger is the reporting sink for a test run. StepStarted and StepFinished are always
// delivered in pairs for every call to T.Step.
type TestLogger interface {
	TestStarted(id TestID)
	TestError(id TestID, err error)
	TestFinished(id TestID, failed bool, debugOutput framework.CapturedOutput)
	TestSkipped(id TestID, reason string)
	StepStarted(id TestID, label string)
	StepFinished(id TestID, label string, failed bool)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                                  {}
func (n nullTestLogger) TestError(TestID, error)                             {}
func (n nullTestLogger) TestFinished(TestID, bool, framework.CapturedOutput) {}
func (n nullTestLogger) TestSkipped(TestID, string)                          {}
func (n nullTestLogger) StepStarted(TestID, string)                          {}
func (n nullTestLogger) StepFinished(TestID, string, bool)                   {}
