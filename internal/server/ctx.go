package server

import (
	"regexp"
	"sync"

	"github.com/woozymasta/exceljson/assets"
	"github.com/woozymasta/exceljson/internal/processor"

	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Processor *processor.Processor
	IndexHTML []byte
	MaxUpload int64

	// one conversion at a time
	convertMu sync.Mutex
}

// NewServerContext prepares the handlers' shared state and minifies the upload page.
func NewServerContext(p *processor.Processor, maxUploadMB int) *ServerContext {
	index := assets.Index

	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)

	if minified, err := m.Bytes("text/html", index); err != nil {
		log.Warn().Err(err).Msg("Failed to minify index page, serving it as is")
	} else {
		log.Debug().
			Int("size", len(index)).
			Int("minified", len(minified)).
			Msg("Index page minified")
		index = minified
	}

	log.Info().
		Strs("numeric_columns", p.Schema().NumericColumns()).
		Str("multi_value_column", p.Schema().MultiValueColumn()).
		Str("geometry_column", p.Schema().GeometryColumn()).
		Int("max_upload_mb", maxUploadMB).
		Msg("Server context initialized successfully")

	return &ServerContext{
		Processor: p,
		IndexHTML: index,
		MaxUpload: int64(maxUploadMB) << 20,
	}
}
