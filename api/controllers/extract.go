package controllers

import (
	"io"
	"net/http"
	"strings"

	"github.com/Abhi-engg/farmstand-backend/api/responses"
	"github.com/Abhi-engg/farmstand-backend/internal/extraction"
	"github.com/Abhi-engg/farmstand-backend/pkg/config"
	pkgerrors "github.com/Abhi-engg/farmstand-backend/pkg/errors"
	"github.com/Abhi-engg/farmstand-backend/pkg/logger"
)

// ExtractText accepts a multipart image upload and returns the text the
// generative AI backend reads from it.
func ExtractText(svc extraction.Service, mediaCfg config.MediaConfig, logg *logger.Logger) http.HandlerFunc {
	maxBytes := int64(mediaCfg.MaxUploadMB) << 20
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "extraction service unavailable"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "image upload too large or malformed"))
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "image file is required"))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read image upload"))
			return
		}

		mimeType := header.Header.Get("Content-Type")
		if !strings.HasPrefix(mimeType, "image/") {
			mimeType = "image/jpeg"
		}

		result, err := svc.ExtractText(r.Context(), extraction.Input{
			Image:    data,
			MimeType: mimeType,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
