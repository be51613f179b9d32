package config

import (
	"github.com/jessevdk/go-flags"
)

// Options are the command line flags. Set values override the config file.
type Options struct {
	Conf       string `short:"c" long:"conf" env:"PODCATALOG_CONF" default:"podcatalog.yml" description:"config file (yml)"`
	Listen     string `short:"l" long:"listen" env:"PODCATALOG_LISTEN" description:"listen address, e.g. :3001"`
	Dist       string `short:"d" long:"dist" env:"PODCATALOG_DIST" description:"frontend build directory"`
	CatalogURL string `long:"catalog-url" env:"PODCATALOG_CATALOG_URL" description:"podcast catalog api url"`
	LogFile    string `long:"log-file" env:"PODCATALOG_LOG_FILE" description:"rotated log file, stdout only when empty"`
	Debug      bool   `long:"debug" env:"PODCATALOG_DEBUG" description:"show debug info"`
}

// ParseArgs parses command line arguments. Help requests come back as a
// *flags.Error of type flags.ErrHelp.
func ParseArgs(args []string) (Options, *flags.Parser, error) {
	var opts Options
	p := flags.NewParser(&opts, flags.PassDoubleDash|flags.HelpFlag)
	_, err := p.ParseArgs(args)
	return opts, p, err
}

// Apply overrides settings with any flags that were set.
func (s *Settings) Apply(opts Options) {
	if opts.Listen != "" {
		s.Server.Listen = opts.Listen
	}
	if opts.Dist != "" {
		s.Server.DistDir = opts.Dist
	}
	if opts.CatalogURL != "" {
		s.Catalog.URL = opts.CatalogURL
	}
	if opts.LogFile != "" {
		s.Logging.File = opts.LogFile
	}
	if opts.Debug {
		s.Logging.Debug = true
	}
}
