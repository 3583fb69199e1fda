package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	pkgerrors "github.com/mobishop/mobishop-backend/pkg/errors"
)

// Upload is a single file from a multipart request.
type Upload struct {
	Name string
	Body io.Reader
}

// Service stores product media on local disk.
type Service interface {
	SaveProductMedia(ctx context.Context, productID string, files []Upload) ([]string, error)
}

type Params struct {
	Dir        string
	PublicBase string
	MaxBytes   int64
}

type service struct {
	dir        string
	publicBase string
	maxBytes   int64
}

func NewService(params Params) (Service, error) {
	if strings.TrimSpace(params.Dir) == "" {
		return nil, fmt.Errorf("media dir required")
	}
	if params.MaxBytes <= 0 {
		return nil, fmt.Errorf("max upload size must be positive")
	}
	base := strings.TrimRight(strings.TrimSpace(params.PublicBase), "/")
	return &service{dir: params.Dir, publicBase: base, maxBytes: params.MaxBytes}, nil
}

// SaveProductMedia writes files under <dir>/products/<productID>/ and returns
// their public paths in input order. Files with a disallowed content type
// fail the whole request; files already written are left in place.
func (s *service) SaveProductMedia(ctx context.Context, productID string, files []Upload) ([]string, error) {
	id, err := uuid.Parse(strings.TrimSpace(productID))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "productId is required")
	}
	target := filepath.Join(s.dir, "products", id.String())
	if err := os.MkdirAll(target, 0o755); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "upload failed")
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := SanitizeName(f.Name)
		if err := s.write(filepath.Join(target, name), f.Body); err != nil {
			return nil, err
		}
		paths = append(paths, s.publicBase+"/"+path.Join("products", id.String(), name))
	}
	return paths, nil
}

func (s *service) write(dest string, body io.Reader) error {
	mediaType, stream, err := sniff(body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unreadable upload")
	}
	if !allowedMime(mediaType) {
		return pkgerrors.New(pkgerrors.CodeValidation, "only images and mp4/webm videos are allowed").
			WithDetails(map[string]any{"mimeType": mediaType})
	}

	out, err := os.Create(dest)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "upload failed")
	}
	written, copyErr := io.Copy(out, io.LimitReader(stream, s.maxBytes+1))
	closeErr := out.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(dest)
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "upload failed")
	}
	if written > s.maxBytes {
		_ = os.Remove(dest)
		return pkgerrors.New(pkgerrors.CodeValidation, "file too large")
	}
	return nil
}
