// Package server handles HTTP requests and middleware.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/woozymasta/exceljson/internal/geo"
	"github.com/woozymasta/exceljson/internal/processor"

	"github.com/rs/zerolog/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HandleIndex serves the upload page.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	etag := fmt.Sprintf(`"%x-%x"`, len(s.IndexHTML), crc32.ChecksumIEEE(s.IndexHTML))

	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	_, _ = w.Write(s.IndexHTML)
}

// HandleSchema serves the column schema used by both conversions.
func (s *ServerContext) HandleSchema(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(s.Processor.Schema().Definition())
}

// HandleConvert returns a handler converting the uploaded multipart "file" field.
// The converted document is returned as an attachment.
func (s *ServerContext) HandleConvert(d processor.Direction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, s.MaxUpload)
		file, header, err := r.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, fmt.Errorf("upload exceeds %d bytes", tooLarge.Limit))
				return
			}
			writeError(w, http.StatusBadRequest, fmt.Errorf("please select a file first: %w", err))
			return
		}
		defer func() { _ = file.Close() }()

		var buf bytes.Buffer
		s.convertMu.Lock()
		n, err := s.Processor.Convert(d, file, &buf)
		s.convertMu.Unlock()

		if err != nil {
			log.Warn().
				Err(err).
				Str("direction", d.String()).
				Str("file", header.Filename).
				Msg("Conversion failed")
			writeError(w, http.StatusBadRequest, err)
			return
		}

		name := strings.TrimSuffix(filepath.Base(header.Filename), filepath.Ext(header.Filename)) + d.DefaultExt()

		w.Header().Set("Content-Type", s.contentType(d))
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.Header().Set("X-Record-Count", strconv.Itoa(n))
		_, _ = w.Write(buf.Bytes())

		log.Info().
			Str("direction", d.String()).
			Str("file", header.Filename).
			Int("records", n).
			Msg("Conversion finished")
	}
}

func (s *ServerContext) contentType(d processor.Direction) string {
	if d == processor.ToSpreadsheet {
		return xlsxContentType
	}
	if s.Processor.Format() == geo.FormatYAML {
		return "application/yaml"
	}
	return "application/geo+json"
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
