package mocks

import (
	"errors"
	"io"
	"net/http"
	"strings"
)

// MockClient stands in for http.Client when fetching a filesystem
type MockClient struct {
	Contents   string // body to send back
	Url        string // url to validate, empty accepts any
	Err        error  // error to return on call
	StatusCode int    // status code to return, zero means 200
}

func (mc *MockClient) Get(url string) (*http.Response, error) {
	if mc.Err != nil {
		return nil, mc.Err
	}

	if len(mc.Url) != 0 && mc.Url != url {
		return &http.Response{Status: "404 Not Found", StatusCode: http.StatusNotFound}, errors.New("URL not found")
	}

	if mc.StatusCode == 0 {
		mc.StatusCode = http.StatusOK
	}

	return &http.Response{
		Status:     http.StatusText(mc.StatusCode),
		StatusCode: mc.StatusCode,
		Body:       io.NopCloser(strings.NewReader(mc.Contents)),
	}, nil
}
