// Package main provides a standalone health check command
// Intended for Docker HEALTHCHECK directives and monitoring scripts
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"
)

const (
	exitCodeSuccess = 0
	exitCodeFailure = 1
	exitCodeError   = 2
)

func main() {
	url := flag.String("url", "http://localhost:8080/health", "Health check endpoint URL")
	timeout := flag.Duration("timeout", 10*time.Second, "Request timeout")
	verbose := flag.Bool("verbose", false, "Print the health response body")
	flag.Parse()

	os.Exit(check(*url, *timeout, *verbose))
}

func check(url string, timeout time.Duration, verbose bool) int {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid health check URL: %v\n", err)
		return exitCodeError
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "health check request failed: %v\n", err)
		return exitCodeFailure
	}
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		fmt.Fprintf(os.Stderr, "health response is not valid JSON: %v\n", err)
		return exitCodeFailure
	}

	if verbose {
		out, _ := json.MarshalIndent(body, "", "  ")
		fmt.Println(string(out))
	}

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "unhealthy: status %d\n", resp.StatusCode)
		return exitCodeFailure
	}

	fmt.Println("healthy")
	return exitCodeSuccess
}
