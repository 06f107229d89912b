package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genFileContent generates random file content of varying sizes.
func genFileContent() gopter.Gen {
	return gen.IntRange(0, 4096).FlatMap(func(size interface{}) gopter.Gen {
		return gen.SliceOfN(size.(int), gen.UInt8Range(0, 255))
	}, reflect.TypeOf([]uint8{}))
}

func TestCaptureIdentityCompleteness(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("CaptureIdentity returns the SHA-256 and size of the content", prop.ForAll(
		func(content []byte) bool {
			path := filepath.Join(t.TempDir(), "ABCView.java")
			if err := os.WriteFile(path, content, 0644); err != nil {
				t.Logf("Failed to write file: %v", err)
				return false
			}

			identity, err := CaptureIdentity(path)
			if err != nil {
				t.Logf("CaptureIdentity failed: %v", err)
				return false
			}

			sum := sha256.Sum256(content)
			return identity.ContentHash == hex.EncodeToString(sum[:]) &&
				identity.Size == int64(len(content)) &&
				!identity.ModTime.IsZero()
		},
		genFileContent(),
	))

	properties.TestingRun(t)
}

func TestCaptureIdentityErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := CaptureIdentity(filepath.Join(dir, "missing.java")); err == nil {
		t.Error("expected an error for a missing file")
	}
	if _, err := CaptureIdentity(dir); err == nil {
		t.Error("expected an error for a directory")
	}
}
