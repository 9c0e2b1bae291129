package server

import (
	"net/http"

	"github.com/woozymasta/exceljson/internal/processor"
)

// Routes returns the application handler with request logging.
func (s *ServerContext) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/schema", s.HandleSchema)
	mux.HandleFunc("/api/convert/geojson", s.HandleConvert(processor.ToGeoJSON))
	mux.HandleFunc("/api/convert/xlsx", s.HandleConvert(processor.ToSpreadsheet))
	mux.HandleFunc("/", s.HandleIndex)

	return RequestLogger(mux)
}
