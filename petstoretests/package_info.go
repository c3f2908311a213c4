// Package petstoretests contains the Petstore contract tests themselves and their supporting API.
//
// Test harness infrastructure that is not specific to the Petstore domain, such as sending
// requests to the service and disposing of entities created during a test, is in the
// lower-level framework packages.
package petstoretests
