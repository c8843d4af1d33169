// Command arrayspacer reads a JSON array or object on stdin and writes it back
// with its integer keys spaced by a fixed stride from a starting offset.
//
//	$ echo '["a","b","c"]' | arrayspacer --spacer 2 --start-at 10
//	{"10":"a","12":"b","14":"c"}
//
// Only the top-level document is re-keyed, and its order is kept. Nested
// objects are decoded as plain maps and written with their fields sorted by
// key. Numbers keep their exact text in JSON output; in YAML output they are
// written as integers or floats.
package main

import (
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	yaml "gopkg.in/yaml.v2"

	"array_spacer/spacer"
)

// LogConfig configures handling of application log events.
type LogConfig struct {
	Level  string `long:"level" env:"LEVEL" default:"warn" choice:"trace" choice:"debug" choice:"info" choice:"warn" choice:"error" choice:"fatal" description:"Logging level"`
	Format string `long:"format" env:"FORMAT" default:"text" choice:"json" choice:"text" choice:"color" description:"Logging output format"`
}

type config struct {
	Spacer  int       `long:"spacer" short:"s" env:"SPACER" default:"1" description:"Stride between consecutive integer keys"`
	StartAt int       `long:"start-at" short:"a" env:"START_AT" default:"0" description:"Key given to the first integer-keyed entry"`
	Output  string    `long:"output" short:"o" env:"OUTPUT" default:"json" choice:"json" choice:"yaml" description:"Output encoding"`
	Log     LogConfig `group:"Logging" namespace:"log" env-namespace:"LOG"`
}

func initLog(cfg LogConfig) {
	log.SetOutput(os.Stderr)
	if cfg.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else if cfg.Format == "text" {
		log.SetFormatter(&log.TextFormatter{})
	} else if cfg.Format == "color" {
		log.SetFormatter(&log.TextFormatter{ForceColors: true})
	}

	if lvl, err := log.ParseLevel(cfg.Level); err != nil {
		log.WithField("err", err).Fatal("unrecognized log level")
	} else {
		log.SetLevel(lvl)
	}
}

// run decodes r into a spaced map and writes the spaced view to w.
func run(cfg config, r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "reading input")
	}

	m := spacer.New[any](cfg.Spacer, cfg.StartAt)
	if err := m.UnmarshalJSON(data); err != nil {
		return errors.Wrap(err, "parsing input")
	}
	log.WithFields(log.Fields{
		"entries": m.Len(),
		"spacer":  m.Spacer(),
		"startAt": m.StartAt(),
	}).Debug("loaded input")

	var out []byte
	switch cfg.Output {
	case "yaml":
		out, err = yaml.Marshal(m)
	default:
		if out, err = m.MarshalJSON(); err == nil {
			out = append(out, '\n')
		}
	}
	if err != nil {
		return errors.Wrapf(err, "encoding %s output", cfg.Output)
	}

	_, err = w.Write(out)
	return errors.Wrap(err, "writing output")
}

func main() {
	var cfg config
	var parser = flags.NewParser(&cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		// flags.Default prints the error, or the help text.
		if flagErr, ok := err.(*flags.Error); ok && flagErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	initLog(cfg.Log)

	if err := run(cfg, os.Stdin, os.Stdout); err != nil {
		log.WithField("err", err).Fatal("failed to space input")
	}
}
