// internal/storage/archive/factory_test.go
package archive

import (
	"testing"

	"github.com/newthinker/recruitdash/internal/config"
)

func TestNew_SelectsBackend(t *testing.T) {
	local, err := New(config.ExportConfig{Type: "localfs", Path: t.TempDir()})
	if err != nil {
		t.Fatalf("localfs: %v", err)
	}
	if _, ok := local.(*LocalFS); !ok {
		t.Errorf("expected *LocalFS, got %T", local)
	}

	remote, err := New(config.ExportConfig{Type: "s3", S3: config.S3Config{Bucket: "b"}})
	if err != nil {
		t.Fatalf("s3: %v", err)
	}
	if _, ok := remote.(*S3Storage); !ok {
		t.Errorf("expected *S3Storage, got %T", remote)
	}

	if _, err := New(config.ExportConfig{Type: "ftp"}); err == nil {
		t.Error("expected error for unknown type")
	}
}
