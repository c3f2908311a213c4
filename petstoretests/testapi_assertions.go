package petstoretests

import (
	"encoding/json"

	"github.com/launchdarkly/petstore-contract-tests/framework/harness"
	"github.com/launchdarkly/petstore-contract-tests/framework/ldtest"
	"github.com/launchdarkly/petstore-contract-tests/schemas"

	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// RequireStatus fails the test immediately if the response did not have the expected status.
func RequireStatus(t *ldtest.T, resp *harness.Response, expected int) {
	require.Equal(t, expected, resp.StatusCode, "unexpected response status; response body was: %s", resp.Text())
}

// RequireJSON returns the decoded response body, failing the test if it is not valid JSON.
func RequireJSON(t *ldtest.T, resp *harness.Response) ldvalue.Value {
	value, err := resp.JSON()
	require.NoError(t, err)
	return value
}

// RequireSchema fails the test if the value does not conform to the schema.
func RequireSchema(t *ldtest.T, schema *schemas.Schema, value ldvalue.Value) {
	require.NoError(t, schema.ValidateJSON(value), "response does not conform to the %s schema", schema.Name())
}

// RequireText fails the test if the raw response body is not exactly the expected text.
func RequireText(t *ldtest.T, resp *harness.Response, expected string) {
	require.Equal(t, expected, resp.Text(), "response text did not match")
}

// ErrorMessage returns the message from an error response. If the body is a JSON object, that
// is its "message" property; otherwise it is the whole body as text.
func ErrorMessage(resp *harness.Response) string {
	if value, err := resp.JSON(); err == nil && value.Type() == ldvalue.ObjectType {
		return value.GetByKey("message").StringValue()
	}
	return resp.Text()
}

// RequireErrorMessage fails the test if ErrorMessage does not return the expected message.
func RequireErrorMessage(t *ldtest.T, resp *harness.Response, expected string) {
	require.Equal(t, expected, ErrorMessage(resp), "error message did not match")
}

// requireProperty checks that one property of a JSON object has the expected value.
func requireProperty(t *ldtest.T, object ldvalue.Value, name string, expected ldvalue.Value) {
	actual := object.GetByKey(name)
	require.True(t, actual.Equal(expected), "%q in response was %s, expected %s",
		name, actual.JSONString(), expected.JSONString())
}

// requireProperties checks every named property of a JSON object against the same property of
// the payload that was sent.
func requireProperties(t *ldtest.T, object ldvalue.Value, payload interface{}, names ...string) {
	expected := jsonValue(payload)
	for _, name := range names {
		requireProperty(t, object, name, expected.GetByKey(name))
	}
}

func jsonValue(v interface{}) ldvalue.Value {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return ldvalue.Parse(data)
}
