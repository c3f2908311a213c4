package harness

import (
	"encoding/json"
	"fmt"
	"net/http"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Response is a completely read HTTP response from the service.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte

	decoded   *ldvalue.Value
	decodeErr error
}

// DecodeError is returned when a response body that was expected to be JSON is not.
type DecodeError struct {
	Body string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("response body is not valid JSON (%s): %q", e.Err, e.Body)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Text returns the raw response body.
func (r *Response) Text() string {
	return string(r.Body)
}

// JSON parses the response body. Parsing happens only the first time this is called; the
// result, or the *DecodeError, is remembered.
func (r *Response) JSON() (ldvalue.Value, error) {
	if r.decoded == nil && r.decodeErr == nil {
		var v ldvalue.Value
		if err := json.Unmarshal(r.Body, &v); err != nil {
			r.decodeErr = &DecodeError{Body: string(r.Body), Err: err}
		} else {
			r.decoded = &v
		}
	}
	if r.decodeErr != nil {
		return ldvalue.Null(), r.decodeErr
	}
	return *r.decoded, nil
}

// DecodeJSON parses the response body into a specific type.
func (r *Response) DecodeJSON(target interface{}) error {
	if err := json.Unmarshal(r.Body, target); err != nil {
		return &DecodeError{Body: string(r.Body), Err: err}
	}
	return nil
}
