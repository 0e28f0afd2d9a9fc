package httputil

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var client = &http.Client{Timeout: 30 * time.Second}

// NewHTTPRequest performs an http call and returns status code, body and error.
func NewHTTPRequest(method, url, bodyString string, header map[string]string) (int, string, error) {
	switch method {
	case "GET":
		return get(url, header)
	case "POST":
		return post(url, bodyString, header)
	default:
		return 0, "", fmt.Errorf("verb not supported %s", method)
	}
}

func get(url string, header map[string]string) (int, string, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return 0, "", err
	}

	for key, value := range header {
		req.Header.Set(key, value)
	}

	rs, err := client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer rs.Body.Close()

	bodyBytes, err := io.ReadAll(rs.Body)
	if err != nil {
		return 0, "", err
	}

	return rs.StatusCode, string(bodyBytes), nil
}

func post(url, bodyString string, header map[string]string) (int, string, error) {
	body := strings.NewReader(bodyString)
	req, err := http.NewRequest("POST", url, body)
	if err != nil {
		return 0, "", err
	}

	for key, value := range header {
		req.Header.Set(key, value)
	}

	rs, err := client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer rs.Body.Close()

	bodyBytes, err := io.ReadAll(rs.Body)
	if err != nil {
		return 0, "", err
	}

	return rs.StatusCode, string(bodyBytes), nil
}
