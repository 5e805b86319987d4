package util

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRobotsChecker_Check(t *testing.T) {
	var robotsHits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			robotsHits.Add(1)
			_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /private/\n")
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	checker := NewRobotsChecker("newsverify/1.0", time.Second)
	ctx := context.Background()

	if err := checker.Check(ctx, server.URL+"/news/story"); err != nil {
		t.Errorf("expected allowed path, got %v", err)
	}

	err := checker.Check(ctx, server.URL+"/private/story")
	if !errors.Is(err, ErrDisallowedByRobots) {
		t.Errorf("expected ErrDisallowedByRobots, got %v", err)
	}

	if robotsHits.Load() != 1 {
		t.Errorf("expected robots.txt fetched once, got %d", robotsHits.Load())
	}

	// A fresh checker keeps its own cache
	_ = NewRobotsChecker("newsverify/1.0", time.Second).Check(ctx, server.URL+"/news/story")
	if robotsHits.Load() != 2 {
		t.Errorf("expected a new checker to fetch robots.txt, got %d", robotsHits.Load())
	}
}

func TestRobotsChecker_MissingRobotsAllows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	checker := NewRobotsChecker("newsverify/1.0", time.Second)
	if err := checker.Check(context.Background(), server.URL+"/anything"); err != nil {
		t.Errorf("expected allow when robots.txt is missing, got %v", err)
	}
}

func TestRobotsChecker_UnreachableAllows(t *testing.T) {
	checker := NewRobotsChecker("newsverify/1.0", 200*time.Millisecond)
	if err := checker.Check(context.Background(), "http://127.0.0.1:1/story"); err != nil {
		t.Errorf("expected allow when robots.txt is unreachable, got %v", err)
	}
}

func TestNormalizeUserAgent(t *testing.T) {
	tests := []struct {
		ua       string
		expected string
	}{
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64)", "Mozilla"},
		{"newsverify/0.1", "newsverify"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeUserAgent(tt.ua); got != tt.expected {
			t.Errorf("NormalizeUserAgent(%q) = %q, want %q", tt.ua, got, tt.expected)
		}
	}
}
