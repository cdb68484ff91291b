package services

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"path"

	"github.com/hopon-app/hopon/storage"
)

// AssetService выкладывает встроенные статические файлы во внешнее хранилище.
type AssetService struct {
	uploader storage.FileUploader
	assets   fs.FS
	prefix   string
	logger   *slog.Logger
}

func NewAssetService(uploader storage.FileUploader, assets fs.FS, logger *slog.Logger) *AssetService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AssetService{
		uploader: uploader,
		assets:   assets,
		prefix:   "static",
		logger:   logger,
	}
}

// Publish загружает перечисленные файлы и возвращает их публичные URL по имени файла.
func (s *AssetService) Publish(ctx context.Context, names ...string) (map[string]string, error) {
	urls := make(map[string]string, len(names))
	for _, name := range names {
		file, err := s.assets.Open(name)
		if err != nil {
			return nil, fmt.Errorf("failed to open asset %s: %w", name, err)
		}

		contentType := mime.TypeByExtension(path.Ext(name))
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		result, err := s.uploader.Upload(ctx, path.Join(s.prefix, name), contentType, file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to publish asset %s: %w", name, err)
		}

		s.logger.Info("static asset published", slog.String("asset", name), slog.String("url", result.Location))
		urls[name] = result.Location
	}
	return urls, nil
}
