package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// HTTPTestSuite contains common utilities for HTTP testing
type HTTPTestSuite struct {
	Router *gin.Engine
}

// SetupHTTPTest initializes Gin for testing. A nil router gets a bare engine.
func SetupHTTPTest(router *gin.Engine) *HTTPTestSuite {
	gin.SetMode(gin.TestMode)
	if router == nil {
		router = gin.New()
	}

	return &HTTPTestSuite{
		Router: router,
	}
}

// MakeRequest marshals body (if any) as JSON and executes the request
func (suite *HTTPTestSuite) MakeRequest(method, url string, body interface{}) *httptest.ResponseRecorder {
	var reqBody io.Reader

	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	}

	return suite.do(method, url, reqBody, body != nil)
}

// MakeRawRequest sends body verbatim, for malformed or oversized payloads
func (suite *HTTPTestSuite) MakeRawRequest(method, url, body string) *httptest.ResponseRecorder {
	return suite.do(method, url, strings.NewReader(body), true)
}

func (suite *HTTPTestSuite) do(method, url string, body io.Reader, isJSON bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if isJSON {
		req.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	suite.Router.ServeHTTP(recorder, req)

	return recorder
}

// AssertJSONResponse asserts the response status and unmarshals JSON response
func AssertJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	t.Helper()
	assert.Equal(t, expectedStatus, recorder.Code)
	assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))

	if target != nil {
		err := json.Unmarshal(recorder.Body.Bytes(), target)
		require.NoError(t, err)
	}
}

// AssertErrorResponse asserts an error response whose message contains expectedMessage
func AssertErrorResponse(t *testing.T, recorder *httptest.ResponseRecorder, expectedStatus int, expectedMessage string) {
	t.Helper()
	assert.Equal(t, expectedStatus, recorder.Code)

	var errorResponse map[string]interface{}
	err := json.Unmarshal(recorder.Body.Bytes(), &errorResponse)
	require.NoError(t, err)

	if expectedMessage != "" {
		assert.Contains(t, errorResponse["message"], expectedMessage)
	}
}

// HTTPTestCase is one row of a table-driven handler test
type HTTPTestCase struct {
	Name           string
	Method         string
	URL            string
	Body           interface{}
	ExpectedStatus int
	ExpectedBody   string
}

// RunHTTPTestCases runs a series of HTTP test cases
func (suite *HTTPTestSuite) RunHTTPTestCases(t *testing.T, testCases []HTTPTestCase) {
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			var recorder *httptest.ResponseRecorder
			if raw, ok := tc.Body.(string); ok {
				recorder = suite.MakeRawRequest(tc.Method, tc.URL, raw)
			} else {
				recorder = suite.MakeRequest(tc.Method, tc.URL, tc.Body)
			}

			assert.Equal(t, tc.ExpectedStatus, recorder.Code)
			if tc.ExpectedBody != "" {
				assert.JSONEq(t, tc.ExpectedBody, recorder.Body.String())
			}
		})
	}
}
