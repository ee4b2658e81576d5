package opts

import (
	"io"

	"github.com/walteh/glo2lyx/pkg/config"
	"github.com/walteh/glo2lyx/pkg/log"
)

// RootOpts contains shared options used by all commands. It is filled in
// once flags are parsed, before any command runs.
type RootOpts struct {
	Config *config.Config
	Logger *log.Logger
	Stdout io.Writer
	Stderr io.Writer
}
