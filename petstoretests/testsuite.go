package petstoretests

import (
	"github.com/launchdarkly/petstore-contract-tests/framework/harness"
	"github.com/launchdarkly/petstore-contract-tests/framework/ldtest"
)

func RunTestSuite(
	h *harness.TestHarness,
	filter ldtest.Filter,
	testLogger ldtest.TestLogger,
) ldtest.Results {
	config := ldtest.TestConfiguration{
		Filter:     filter,
		TestLogger: testLogger,
		Context:    PetstoreTestContext{harness: h},
	}
	return ldtest.Run(config, func(t *ldtest.T) {
		t.Run("pet", DoPetTests)
		t.Run("store", DoStoreTests)
	})
}
