package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

const slowHealthThreshold = time.Second

type HealthCheckCommand struct{}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Check /healthz and /readyz on a running server [base-url]"
}

func (c *HealthCheckCommand) Run(args []string) error {
	baseURL := getEnv("MIVY_URL", defaultBaseURL)
	if len(args) > 0 {
		baseURL = args[0]
	}
	baseURL = strings.TrimRight(baseURL, "/")

	PrintHeader(fmt.Sprintf("Health Check (%s)", baseURL))

	client := &http.Client{Timeout: 5 * time.Second}
	for _, path := range []string{"/healthz", "/readyz"} {
		start := time.Now()
		if err := checkHealth(client, baseURL+path); err != nil {
			PrintError("%s failed: %v", path, err)
			return err
		}

		if duration := time.Since(start); duration > slowHealthThreshold {
			PrintWarning("%s slow response time (%v)", path, duration)
		} else {
			PrintSuccess("%s passed (response time: %v)", path, duration)
		}
	}
	return nil
}

func checkHealth(client *http.Client, url string) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
