// Package framework contains the low-level implementation of test harness infrastructure
// that can be reused for different kinds of HTTP contract tests. The base package contains
// shared types such as Logger; other components are in the subpackages harness and ldtest.
//
// The general model is:
//
// 1. The test harness talks to a remote service under test through a base URL that is
// supplied as configuration. It can send arbitrary requests to that service, and it can
// ask the service to create an entity (POST) that the harness later disposes of (DELETE).
//
// 2. There is a general notion of a test scope which is similar to Go's testing.T, allowing
// pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results, deferred cleanup actions, and labeled steps.
//
// The domain-specific code that knows what is being tested is responsible for providing
// the request payloads, the expectations about responses, and a domain-specific test API on
// top of the test scope.
package framework
