package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dverbeek/promptbooth/internal/log"
	"github.com/samber/lo"
)

// sidecar preserves upload metadata next to the image for backends without
// native object metadata.
type sidecar struct {
	ContentType string            `json:"contentType"`
	Metadata    map[string]string `json:"metadata"`
}

func sidecarPath(path string) string {
	return path + ".meta.json"
}

// FileUploader writes images to a local directory, useful when running
// without any cloud storage configured.
type FileUploader struct {
	Dir string
}

func (u *FileUploader) Upload(ctx context.Context, params UploadParams) error {
	logger := log.FromContextOrDiscard(ctx).With("name", params.Name, "dir", u.Dir)
	logger.Info("writing file")

	if err := os.MkdirAll(u.Dir, 0700); err != nil {
		return err
	}

	path := filepath.Join(u.Dir, params.Name)
	if err := os.WriteFile(path, params.Data, 0600); err != nil {
		return err
	}

	meta, err := json.Marshal(sidecar{ContentType: params.ContentType, Metadata: params.Metadata})
	if err != nil {
		return err
	}
	return os.WriteFile(sidecarPath(path), meta, 0600)
}

type FileLister struct {
	Dir string
}

func (l *FileLister) List(ctx context.Context) ([]Entry, error) {
	logger := log.FromContextOrDiscard(ctx).With("dir", l.Dir)
	logger.Debug("listing images on disk")

	dirents, err := os.ReadDir(l.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	images := lo.Filter(dirents, func(d os.DirEntry, _ int) bool {
		return !d.IsDir() && strings.HasSuffix(d.Name(), ".png")
	})

	entries := make([]Entry, 0, len(images))
	for _, d := range images {
		info, err := d.Info()
		if err != nil {
			return nil, err
		}

		entry := Entry{Name: d.Name(), Modified: info.ModTime()}
		if data, err := os.ReadFile(sidecarPath(filepath.Join(l.Dir, d.Name()))); err == nil {
			var side sidecar
			if err := json.Unmarshal(data, &side); err == nil {
				entry.Metadata = side.Metadata
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
