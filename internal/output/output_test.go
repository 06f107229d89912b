package output

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func newTestOutput(verbose, tty bool) (*Output, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return New(Config{
		Verbose:   verbose,
		Writer:    &out,
		ErrWriter: &errOut,
		IsTTY:     tty,
	}), &out, &errOut
}

func TestVerboseOutputOnlyAppearsWhenEnabled(t *testing.T) {
	tests := []struct {
		name        string
		verbose     bool
		expectEmpty bool
	}{
		{"verbose disabled - no output", false, true},
		{"verbose enabled - has output", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, buf, _ := newTestOutput(tt.verbose, false)

			out.Verbose("test message")

			if tt.expectEmpty && buf.Len() > 0 {
				t.Errorf("expected no output when verbose disabled, got: %q", buf.String())
			}
			if !tt.expectEmpty && buf.String() != "test message\n" {
				t.Errorf("expected 'test message', got: %q", buf.String())
			}
		})
	}
}

func TestMessagesGoToTheRightWriter(t *testing.T) {
	out, stdout, stderr := newTestOutput(false, false)

	out.Info("info")
	out.Success("done")
	out.Warn("careful")
	out.Error("broken")

	if stdout.String() != "info\ndone\n" {
		t.Errorf("unexpected stdout %q", stdout.String())
	}
	if stderr.String() != "careful\nbroken\n" {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
}

func TestNoDoubleNewline(t *testing.T) {
	out, stdout, _ := newTestOutput(false, false)

	out.Info("line\n")

	if stdout.String() != "line\n" {
		t.Errorf("expected a single trailing newline, got %q", stdout.String())
	}
}

func TestPlainOutputWhenNotTTY(t *testing.T) {
	out, _, stderr := newTestOutput(false, false)

	out.Error("plain")

	if strings.Contains(stderr.String(), "\x1b[") {
		t.Errorf("expected no escape sequences off a terminal, got %q", stderr.String())
	}
}

func TestProgressSuppressedWhenNotTTYOrVerbose(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		tty     bool
	}{
		{"not a terminal", false, false},
		{"verbose", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, buf, _ := newTestOutput(tt.verbose, tt.tty)

			out.StartProgress(10)
			out.UpdateProgress(5, "")
			out.EndProgress()

			if buf.Len() != 0 {
				t.Errorf("expected no progress output, got %q", buf.String())
			}
		})
	}
}

func TestEndProgressClearsLine(t *testing.T) {
	out, buf, _ := newTestOutput(false, true)

	out.StartProgress(3)
	out.UpdateProgress(1, "")
	buf.Reset()
	out.EndProgress()

	if !strings.HasPrefix(buf.String(), "\r") || !strings.HasSuffix(buf.String(), "\r") {
		t.Errorf("expected a carriage-return clear, got %q", buf.String())
	}
}

func TestProgressIndicatorFormat(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("progress format matches 'Trimming file N/M...' by default", prop.ForAll(
		func(current, total int) bool {
			if current > total {
				current, total = total, current
			}

			out, buf, _ := newTestOutput(false, true)
			out.StartProgress(total)
			out.UpdateProgress(current, "")

			want := regexp.MustCompile(`^\rTrimming file ` + strconv.Itoa(current) + `/` + strconv.Itoa(total) + `\.\.\.$`)
			return want.MatchString(buf.String())
		},
		gen.IntRange(1, 1000),
		gen.IntRange(1, 1000),
	))

	properties.Property("custom message replaces the default label", prop.ForAll(
		func(current int, message string) bool {
			out, buf, _ := newTestOutput(false, true)
			out.StartProgress(1000)
			out.UpdateProgress(current, message)

			return buf.String() == "\r"+message+" "+strconv.Itoa(current)+"/1000..."
		},
		gen.IntRange(1, 1000),
		gen.AlphaString().SuchThat(func(s string) bool { return len(s) > 0 }),
	))

	properties.TestingRun(t)
}

func TestAccessors(t *testing.T) {
	out, _, _ := newTestOutput(true, false)
	if !out.IsVerbose() || out.IsTTY() {
		t.Errorf("unexpected accessors: verbose=%v tty=%v", out.IsVerbose(), out.IsTTY())
	}
}
