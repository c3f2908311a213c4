package harness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/launchdarkly/petstore-contract-tests/framework"

	"github.com/getkin/kin-openapi/openapi3"
)

// OpenAPIPath is the resource, relative to the base URL, where the harness looks for the
// service's OpenAPI description when it first connects.
const OpenAPIPath = "/openapi.json"

// TestHarness sends requests to the service under test. All requests are relative to a base
// URL that is supplied when the harness is created.
type TestHarness struct {
	baseURL         string
	client          *http.Client
	testServiceInfo TestServiceInfo
	logger          framework.Logger
}

// TestServiceInfo is status information about the service, taken from its OpenAPI
// description if it provides one.
type TestServiceInfo struct {
	Title   string
	Version string
}

// NewTestHarness creates a TestHarness instance, and verifies that the service is responding by
// querying its OpenAPI resource, retrying until statusQueryTimeout elapses.
//
// requestTimeout limits every subsequent request; zero means requests rely on the transport's
// own defaults.
func NewTestHarness(
	baseURL string,
	requestTimeout time.Duration,
	statusQueryTimeout time.Duration,
	debugLogger framework.Logger,
	startupOutput io.Writer,
) (*TestHarness, error) {
	if debugLogger == nil {
		debugLogger = framework.NullLogger()
	}
	if startupOutput == nil {
		startupOutput = io.Discard
	}

	h := &TestHarness{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: requestTimeout},
		logger:  debugLogger,
	}

	info, err := h.queryTestServiceInfo(statusQueryTimeout, startupOutput)
	if err != nil {
		return nil, err
	}
	h.testServiceInfo = info

	return h, nil
}

func (h *TestHarness) BaseURL() string {
	return h.baseURL
}

func (h *TestHarness) TestServiceInfo() TestServiceInfo {
	return h.testServiceInfo
}

func (h *TestHarness) queryTestServiceInfo(timeout time.Duration, output io.Writer) (TestServiceInfo, error) {
	statusURL := h.baseURL + OpenAPIPath
	fmt.Fprintf(output, "Connecting to service at %s", h.baseURL)

	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		resp, err := h.client.Get(statusURL)
		if err == nil {
			fmt.Fprintln(output)
			data, readErr := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if readErr != nil {
				return TestServiceInfo{}, readErr
			}
			if resp.StatusCode != http.StatusOK {
				fmt.Fprintf(output, "Service is responding, but returned status %d for %s\n", resp.StatusCode, OpenAPIPath)
				return TestServiceInfo{}, nil
			}
			doc, err := openapi3.NewLoader().LoadFromData(data)
			if err != nil || doc.Info == nil {
				fmt.Fprintf(output, "Service is responding, but provided no OpenAPI metadata\n")
				return TestServiceInfo{}, nil
			}
			info := TestServiceInfo{Title: doc.Info.Title, Version: doc.Info.Version}
			fmt.Fprintf(output, "Service identifies itself as: %s %s\n", info.Title, info.Version)
			return info, nil
		}
		h.logger.Printf("Status query failed: %s", err)
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return TestServiceInfo{}, fmt.Errorf("timed out, result of last query was: %w", err)
		}
		time.Sleep(time.Millisecond * 100)
	}
}

// Request describes one HTTP request to the service.
type Request struct {
	// Method is the HTTP method, such as "GET".
	Method string

	// Path is the resource path relative to the base URL, such as "/pet".
	Path string

	// ID, if not nil, is appended to Path as one more path segment.
	ID interface{}

	// Query contains optional query parameters.
	Query url.Values

	// Body, if not nil, is marshaled to JSON and sent as the request body.
	Body interface{}
}

// URL returns the absolute URL of the request for the given base URL.
func (r Request) URL(baseURL string) string {
	u := baseURL + r.Path
	if r.ID != nil {
		u += "/" + url.PathEscape(fmt.Sprint(r.ID))
	}
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}
	return u
}

// Do sends a request to the service and reads the entire response. Any HTTP status is a
// successful result; an error is returned only if the request could not be made.
func (h *TestHarness) Do(req Request, logger framework.Logger) (*Response, error) {
	if logger == nil {
		logger = h.logger
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	requestURL := req.URL(h.baseURL)

	var body io.Reader
	var bodyData []byte
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("could not encode request body for %s %s: %w", method, requestURL, err)
		}
		bodyData = data
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequest(method, requestURL, body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
		logger.Printf(">> %s %s %s", method, requestURL, string(bodyData))
	} else {
		logger.Printf(">> %s %s", method, requestURL)
	}

	resp, err := h.client.Do(httpReq)
	if err != nil {
		logger.Printf("Request failed: %s", err)
		return nil, fmt.Errorf("%s %s failed: %w", method, requestURL, err)
	}
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body from %s %s: %w", method, requestURL, err)
	}
	logger.Printf("<< %d %s", resp.StatusCode, string(data))

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}
