package controllers

import (
	"mime/multipart"
	"net/http"

	"github.com/mobishop/mobishop-backend/api/responses"
	"github.com/mobishop/mobishop-backend/internal/media"
	pkgerrors "github.com/mobishop/mobishop-backend/pkg/errors"
	"github.com/mobishop/mobishop-backend/pkg/logger"
)

const maxMemoryBytes = 8 << 20

// MediaUpload accepts a multipart form with productId and one or more
// files[] parts, and returns the public paths of the stored files.
func MediaUpload(svc media.Service, maxRequestBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if maxRequestBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
		}
		if err := r.ParseMultipartForm(maxMemoryBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}
		defer r.MultipartForm.RemoveAll()

		headers := r.MultipartForm.File["files[]"]
		if len(headers) == 0 {
			headers = r.MultipartForm.File["files"]
		}
		if len(headers) == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "at least one file is required"))
			return
		}

		uploads := make([]media.Upload, 0, len(headers))
		opened := make([]multipart.File, 0, len(headers))
		defer func() {
			for _, f := range opened {
				f.Close()
			}
		}()
		for _, header := range headers {
			f, err := header.Open()
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unreadable file"))
				return
			}
			opened = append(opened, f)
			uploads = append(uploads, media.Upload{Name: header.Filename, Body: f})
		}

		paths, err := svc.SaveProductMedia(r.Context(), r.FormValue("productId"), uploads)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"paths": paths})
	}
}
