package httpapi

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestLogRequest_EmitsStructuredLine(t *testing.T) {
	old := zlog
	defer func() { zlog = old }()

	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))

	r := httptest.NewRequest("POST", "/v1/motion", nil)
	logRequest(r, 200, 5*time.Millisecond, nil)

	out := buf.String()
	if !strings.Contains(out, `"message":"motion request"`) {
		t.Fatalf("missing message: %q", out)
	}
	if !strings.Contains(out, `"status":200`) || !strings.Contains(out, `"path":"/v1/motion"`) {
		t.Fatalf("missing fields: %q", out)
	}
	if !strings.Contains(out, `"level":"info"`) {
		t.Fatalf("expected info level: %q", out)
	}
}

func TestLogRequest_ErrorsLogAtWarn(t *testing.T) {
	old := zlog
	defer func() { zlog = old }()

	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))

	r := httptest.NewRequest("POST", "/v1/motion", nil)
	logRequest(r, 503, time.Millisecond, errors.New("generation queue is full"))

	out := buf.String()
	if !strings.Contains(out, `"level":"warn"`) {
		t.Fatalf("expected warn level: %q", out)
	}
	if !strings.Contains(out, "generation queue is full") {
		t.Fatalf("missing error field: %q", out)
	}
}

func TestLogRequest_NoopWithoutLogger(t *testing.T) {
	old := zlog
	defer func() { zlog = old }()
	zlog = nil

	r := httptest.NewRequest("GET", "/health", nil)
	logRequest(r, 200, 0, nil) // must not panic
}
