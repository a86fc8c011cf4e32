package ui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func newTestUI(input string) (*UI, *bytes.Buffer) {
	var out bytes.Buffer
	u := New(&out, &out, ColorNever, true)
	u.In = strings.NewReader(input)
	return u, &out
}

func TestConfirm(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    bool
		retries int
	}{
		{"yes", "y\n", true, 0},
		{"no", "n\n", false, 0},
		{"empty line", "\n", false, 0},
		{"end of input", "", false, 0},
		{"retry then yes", "yes\nmaybe\ny\n", true, 2},
		{"windows newline", "y\r\n", true, 0},
		{"unterminated garbage", "what", false, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u, out := newTestUI(tc.input)
			got, err := u.Confirm(context.Background())
			if err != nil {
				t.Fatalf("Confirm() error = %v", err)
			}
			if got != tc.want {
				t.Fatalf("Confirm() = %v, want %v", got, tc.want)
			}
			if n := strings.Count(out.String(), ConfirmRetry); n != tc.retries {
				t.Fatalf("retry messages = %d, want %d (output %q)", n, tc.retries, out.String())
			}
			if n := strings.Count(out.String(), ConfirmPrompt); n != tc.retries+1 {
				t.Fatalf("prompts = %d, want %d", n, tc.retries+1)
			}
		})
	}
}

func TestConfirmStopsWhenContextCancelled(t *testing.T) {
	reader, writer := io.Pipe()
	defer writer.Close()

	var out bytes.Buffer
	u := New(&out, &out, ColorNever, true)
	u.In = reader

	ctx, cancel := context.WithCancel(context.Background())
	type result struct {
		ok  bool
		err error
	}
	done := make(chan result, 1)
	go func() {
		ok, err := u.Confirm(ctx)
		done <- result{ok, err}
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case res := <-done:
		if res.ok {
			t.Fatalf("Confirm() = true, want false")
		}
		if !errors.Is(res.err, context.Canceled) {
			t.Fatalf("Confirm() error = %v, want %v", res.err, context.Canceled)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Confirm() still waiting after cancel")
	}
}

func TestToErrRedirectsOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	u := New(&out, &errOut, ColorNever, true).ToErr()
	u.Infof("Found %d maps.", 3)

	if out.Len() != 0 {
		t.Fatalf("ToErr() wrote to stdout: %q", out.String())
	}
	if errOut.String() != "Found 3 maps.\n" {
		t.Fatalf("ToErr() err = %q", errOut.String())
	}
}

func TestFatalfWritesSingleLineToOut(t *testing.T) {
	var out, errOut bytes.Buffer
	u := New(&out, &errOut, ColorNever, false)
	u.Fatalf("IOError: %s\n", "boom")

	if out.String() != "IOError: boom\n" {
		t.Fatalf("Fatalf() out = %q", out.String())
	}
	if errOut.Len() != 0 {
		t.Fatalf("Fatalf() wrote to stderr: %q", errOut.String())
	}
}

func TestNormalizeColorMode(t *testing.T) {
	cases := map[string]ColorMode{
		"always":  ColorAlways,
		" NEVER ": ColorNever,
		"":        ColorAuto,
		"bogus":   ColorAuto,
	}
	for in, want := range cases {
		if got := NormalizeColorMode(in); got != want {
			t.Fatalf("NormalizeColorMode(%q) = %q, want %q", in, got, want)
		}
	}
}
