package file

import (
	"context"
	"fmt"
	"imghook/internal/core/domain"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

const octetStream = "application/octet-stream"

// ContentType returns the declared content type unless it is missing or generic, in which case the type is
// sniffed from the data.
func ContentType(declared string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != octetStream {
		return declared
	}

	return mimetype.Detect(data).String()
}

// IsImage reports whether data looks like an image, regardless of its name or declared type.
func IsImage(data []byte) bool {
	return strings.HasPrefix(mimetype.Detect(data).String(), "image/")
}

// NewImage builds an image from uploaded or read bytes, filling in the content type if needed.
func NewImage(name, contentType string, data []byte) domain.Image {
	return domain.Image{
		Name:        filepath.Base(name),
		ContentType: ContentType(contentType, data),
		Data:        data,
	}
}

// ReadImage loads an image from disk.
func ReadImage(path string) (domain.Image, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("error reading image %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return domain.Image{}, err
	}

	if len(buf) == 0 {
		return domain.Image{}, fmt.Errorf("%s: %w", path, domain.ErrEmptyImage)
	}

	if !IsImage(buf) {
		log.Warn().Str("path", path).Str("type", mimetype.Detect(buf).String()).Msg("file does not look like an image")
	}

	return NewImage(path, "", buf), nil
}

// DownloadFile returns the byte content of a file on a provided URL.
func DownloadFile(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		err = fmt.Errorf("error creating request %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return nil, err
	}

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		err = fmt.Errorf("error executing request %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		err = fmt.Errorf("unexpected status code on download: %d", res.StatusCode)
		log.Error().Err(err).Str("path", path).Send()
		return nil, err
	}

	buf, err := io.ReadAll(res.Body)
	if err != nil {
		err = fmt.Errorf("error reading response %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return nil, err
	}

	return buf, nil
}

// SaveFile writes data under a random name into dir and returns the path. The extension is derived from the
// content.
func SaveFile(dir string, data []byte) (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}

	extension := mimetype.Detect(data).Extension()

	log.Debug().Int("bytes", len(data)).Str("extension", extension).Msg("saving file")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		err = fmt.Errorf("error creating directory %w", err)
		log.Error().Err(err).Str("dir", dir).Send()
		return "", err
	}

	path := filepath.Join(dir, id.String()+extension)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		err = fmt.Errorf("error writing file %w", err)
		log.Error().Err(err).Send()
		return "", err
	}

	log.Debug().Str("path", path).Msg("saved file")

	return path, nil
}
