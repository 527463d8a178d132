// internal/storage/archive/factory.go
package archive

import (
	"fmt"

	"github.com/newthinker/recruitdash/internal/config"
)

// New builds the Storage selected by cfg.Type.
func New(cfg config.ExportConfig) (Storage, error) {
	switch cfg.Type {
	case "", "localfs":
		return NewLocalFS(cfg.Path)
	case "s3":
		return NewS3(S3Config{
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Prefix:    cfg.S3.Prefix,
		})
	default:
		return nil, fmt.Errorf("unknown export storage type %q", cfg.Type)
	}
}
