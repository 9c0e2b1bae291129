package processor

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Prompter supplies file paths for a conversion and displays its outcome.
type Prompter interface {
	// SourcePath returns the input file, or "" if none was chosen.
	SourcePath() string
	// DestinationPath returns the output file, or "" to cancel.
	DestinationPath(defaultExt string) string
	Success(msg string)
	Failure(title string, err error)
}

// PathPrompter answers from fixed paths, as given on a command line,
// and reports through the logger.
type PathPrompter struct {
	Source      string
	Destination string
}

// SourcePath implements Prompter.
func (p *PathPrompter) SourcePath() string { return p.Source }

// DestinationPath implements Prompter. Without an explicit destination the source
// path is reused with defaultExt.
func (p *PathPrompter) DestinationPath(defaultExt string) string {
	if p.Destination != "" {
		return p.Destination
	}
	if p.Source == "" {
		return ""
	}
	return strings.TrimSuffix(p.Source, filepath.Ext(p.Source)) + defaultExt
}

// Success implements Prompter.
func (p *PathPrompter) Success(msg string) {
	log.Info().Msg(msg)
}

// Failure implements Prompter.
func (p *PathPrompter) Failure(title string, err error) {
	log.Error().Err(err).Msg(title)
}
