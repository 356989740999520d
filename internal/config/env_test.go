package config

import (
	"testing"
	"time"
)

func TestEnvOrDefaultTrimsAndFallsBack(t *testing.T) {
	t.Setenv(envKeyPrefix, "   ")
	if got := envOrDefault(envKeyPrefix, "roster"); got != "roster" {
		t.Fatalf("expected default for blank value, got %q", got)
	}
	t.Setenv(envKeyPrefix, " staging ")
	if got := envOrDefault(envKeyPrefix, "roster"); got != "staging" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
}

func TestIntEnvOrDefault(t *testing.T) {
	cases := []struct {
		val      string
		expected int
	}{
		{"", defaultRetryAttempts},
		{"5", 5},
		{" 7 ", 7},
		{"0", defaultRetryAttempts},
		{"-2", defaultRetryAttempts},
		{"three", defaultRetryAttempts},
	}
	for _, tc := range cases {
		t.Setenv(envRetryAttempts, tc.val)
		if got := intEnvOrDefault(envRetryAttempts, defaultRetryAttempts); got != tc.expected {
			t.Fatalf("expected %d for %q, got %d", tc.expected, tc.val, got)
		}
	}
}

func TestDurationEnvOrDefault(t *testing.T) {
	cases := []struct {
		val      string
		expected time.Duration
	}{
		{"", defaultRetryBackoff},
		{"250ms", 250 * time.Millisecond},
		{" 1s", time.Second},
		{"0s", defaultRetryBackoff},
		{"-1s", defaultRetryBackoff},
		{"soon", defaultRetryBackoff},
	}
	for _, tc := range cases {
		t.Setenv(envRetryBackoff, tc.val)
		if got := durationEnvOrDefault(envRetryBackoff, defaultRetryBackoff); got != tc.expected {
			t.Fatalf("expected %v for %q, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv(envMetricsOn, "")
	if got := boolEnvOrDefault(envMetricsOn, true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{" Yes ", true},
		{"1", true},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{"maybe", true},
	}
	for _, tc := range cases {
		t.Setenv(envMetricsOn, tc.val)
		if got := boolEnvOrDefault(envMetricsOn, true); got != tc.expected {
			t.Fatalf("expected %v for %q, got %v", tc.expected, tc.val, got)
		}
	}
}
