package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

// captureOutput redirects both log streams into buffers for the duration of f.
func captureOutput(t *testing.T, f func()) (string, string) {
	t.Helper()

	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	defer SetOutput(os.Stdout, os.Stderr)

	f()

	return out.String(), errOut.String()
}

func TestSetVerbose(t *testing.T) {
	originalVerbose := IsVerbose()
	defer SetVerbose(originalVerbose)

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("Expected verbose to be true")
	}

	SetVerbose(false)
	if IsVerbose() {
		t.Error("Expected verbose to be false")
	}
}

func TestDebugf_VerboseOff(t *testing.T) {
	originalVerbose := IsVerbose()
	defer SetVerbose(originalVerbose)

	SetVerbose(false)

	stdout, stderr := captureOutput(t, func() {
		Debugf("padding %d bytes", 64)
	})

	if stdout != "" || stderr != "" {
		t.Errorf("Expected no output when verbose is off, got stdout=%q stderr=%q", stdout, stderr)
	}
}

func TestDebugf_VerboseOn(t *testing.T) {
	originalVerbose := IsVerbose()
	defer SetVerbose(originalVerbose)

	SetVerbose(true)

	stdout, stderr := captureOutput(t, func() {
		Debugf("padding %d bytes", 64)
	})

	if !strings.Contains(stdout, "[DBG]") || !strings.Contains(stdout, "padding 64 bytes") {
		t.Errorf("Expected debug message in stdout, got: %s", stdout)
	}
	if stderr != "" {
		t.Errorf("Expected no stderr output for debug, got: %s", stderr)
	}
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name     string
		logf     func(string, ...interface{})
		prefix   string
		toStderr bool
	}{
		{name: "info", logf: Infof, prefix: "[INF]"},
		{name: "warn", logf: Warnf, prefix: "[WRN]"},
		{name: "error", logf: Errorf, prefix: "[ERR]", toStderr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr := captureOutput(t, func() {
				tt.logf("message %s", tt.name)
			})

			got, other := stdout, stderr
			if tt.toStderr {
				got, other = stderr, stdout
			}
			if !strings.Contains(got, tt.prefix) || !strings.Contains(got, "message "+tt.name) {
				t.Errorf("Expected %s message, got: %q", tt.prefix, got)
			}
			if other != "" {
				t.Errorf("Expected nothing on the other stream, got: %q", other)
			}
		})
	}
}

func TestForceStdErr(t *testing.T) {
	defer SetForceStdErr(false)

	SetForceStdErr(true)

	stdout, stderr := captureOutput(t, func() {
		Infof("digest written")
	})

	if stdout != "" {
		t.Errorf("Expected no stdout output when forceStdErr is true, got: %s", stdout)
	}
	if !strings.Contains(stderr, "[INF]") || !strings.Contains(stderr, "digest written") {
		t.Errorf("Expected info message in stderr, got: %s", stderr)
	}
}

func TestDisableLogs(t *testing.T) {
	defer EnableLogs()

	DisableLogs()
	if !IsDisabled() {
		t.Fatal("Expected logs to be disabled")
	}

	stdout, stderr := captureOutput(t, func() {
		Infof("hidden")
		Errorf("hidden")
	})

	if stdout != "" || stderr != "" {
		t.Errorf("Expected no output while disabled, got stdout=%q stderr=%q", stdout, stderr)
	}
}
