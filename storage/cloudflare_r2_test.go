package storage

import (
	"context"
	"testing"
)

func TestPublicURL(t *testing.T) {
	tests := []struct {
		base string
		key  string
		want string
	}{
		{"https://cdn.example", "static/logo.svg", "https://cdn.example/static/logo.svg"},
		{"https://cdn.example/", "/static/logo.svg", "https://cdn.example/static/logo.svg"},
		{"https://cdn.example/hopon", "static/logo.svg", "https://cdn.example/hopon/static/logo.svg"},
		{"https://cdn.example/hopon/", "static/logo.svg", "https://cdn.example/hopon/static/logo.svg"},
		{"https://cdn.example", "", ""},
	}
	for _, tt := range tests {
		base, err := parsePublicBaseURL(tt.base)
		if err != nil {
			t.Fatalf("parsePublicBaseURL(%q): %v", tt.base, err)
		}
		if got := publicURL(base, tt.key); got != tt.want {
			t.Errorf("publicURL(%q, %q) = %q, want %q", tt.base, tt.key, got, tt.want)
		}
	}
}

func TestParsePublicBaseURLRejectsRelative(t *testing.T) {
	for _, raw := range []string{"cdn.example", "/static", "://bad"} {
		if _, err := parsePublicBaseURL(raw); err == nil {
			t.Errorf("parsePublicBaseURL(%q) succeeded", raw)
		}
	}
}

func TestNewCloudflareR2UploaderValidatesConfig(t *testing.T) {
	_, err := NewCloudflareR2Uploader(context.Background(), CloudflareR2UploaderConfig{AccountID: "acc"})
	if err == nil {
		t.Fatal("expected error for incomplete config")
	}
}
