package sftpclient

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfigDefaults(t *testing.T) {
	cfg := Config{Host: "files.example.com"}.withDefaults()

	if cfg.Port != 22 {
		t.Errorf("Expected default Port 22, got %d", cfg.Port)
	}
	if cfg.RemoteDir != "/" {
		t.Errorf("Expected default RemoteDir /, got %q", cfg.RemoteDir)
	}
	if got := (Config{Host: "h", Port: 2222}).Addr(); got != "h:2222" {
		t.Errorf("Addr() = %q, want h:2222", got)
	}
}

func TestHostKeyCallback(t *testing.T) {
	if _, err := hostKeyCallback(Config{InsecureIgnoreHostKey: true}); err != nil {
		t.Errorf("Expected insecure callback, got %v", err)
	}

	missing := filepath.Join(t.TempDir(), "known_hosts")
	if _, err := hostKeyCallback(Config{KnownHosts: missing}); err == nil {
		t.Error("Expected error for a missing known_hosts file")
	}

	empty := filepath.Join(t.TempDir(), "known_hosts")
	if err := os.WriteFile(empty, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := hostKeyCallback(Config{KnownHosts: empty}); err != nil {
		t.Errorf("Expected empty known_hosts to load, got %v", err)
	}
}

func TestUploadFileValidation(t *testing.T) {
	local := filepath.Join(t.TempDir(), "results.csv")
	if err := os.WriteFile(local, []byte("COURSE_ID\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		name          string
		cfg           Config
		localPath     string
		errorContains string
	}{
		{
			name:          "Missing credentials",
			cfg:           Config{},
			localPath:     local,
			errorContains: ErrMissingCredentials.Error(),
		},
		{
			name:          "Missing local file",
			cfg:           Config{Host: "127.0.0.1", User: "u", Pass: "p", InsecureIgnoreHostKey: true},
			localPath:     "non_existent_file.csv",
			errorContains: "sftp: open local file",
		},
		{
			name:          "Unreachable host",
			cfg:           Config{Host: "127.0.0.1", Port: 1, User: "u", Pass: "p", InsecureIgnoreHostKey: true},
			localPath:     local,
			errorContains: "sftp: dial",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			err := UploadFile(ctx, tc.cfg, tc.localPath, "results.csv")
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.errorContains) {
				t.Errorf("Expected error to contain %q, got %q", tc.errorContains, err.Error())
			}
		})
	}
}

func TestUploadFileCancelled(t *testing.T) {
	local := filepath.Join(t.TempDir(), "results.csv")
	if err := os.WriteFile(local, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// 192.0.2.0/24 is reserved for documentation and never answers.
	err := UploadFile(ctx, Config{Host: "192.0.2.1", User: "u", Pass: "p", InsecureIgnoreHostKey: true}, local, "results.csv")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
