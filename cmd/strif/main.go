// Command strif renders a template file against YAML or JSON data.
//
//	strif -t greeting.txt -d user.yaml -p props.yaml -plugins text -o out.txt
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/strif"
	_ "github.com/bjaus/strif/plugins/html"
	_ "github.com/bjaus/strif/plugins/text"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}))
	if err := render(cfg, stdin, stdout, logger); err != nil {
		logger.Error("render failed", "template", cfg.Template, "error", err)
		return 1
	}
	return 0
}

func parseArgs(args []string, stderr io.Writer) (Config, error) {
	fs := flag.NewFlagSet("strif", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML config file")
	tmpl := fs.String("t", "", "template file")
	data := fs.String("d", "", "data file, YAML or JSON (- for stdin)")
	props := fs.String("p", "", "props file, YAML or JSON")
	output := fs.String("o", "", "output file (stdout if empty)")
	plugins := fs.String("plugins", "", "comma separated plugin names")
	ignore := fs.String("ignore", "", "comma separated transformers to ignore")
	each := fs.Bool("each", false, "render once per element of a list data root")
	logLevel := fs.String("log-level", "", "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = LoadConfig(*configPath); err != nil {
			return Config{}, err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.Template = *tmpl
		case "d":
			cfg.Data = *data
		case "p":
			cfg.Props = *props
		case "o":
			cfg.Output = *output
		case "plugins":
			cfg.Plugins = splitList(*plugins)
		case "ignore":
			cfg.Ignore = splitList(*ignore)
		case "each":
			cfg.Each = *each
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	return cfg, cfg.validate()
}

func render(cfg Config, stdin io.Reader, stdout io.Writer, logger *slog.Logger) error {
	f, err := strif.NewFormatter(strif.Options{
		Transformers: strif.DefaultTransformers(),
		Plugins:      cfg.Plugins,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	var opts strif.TemplateOptions
	if cfg.Props != "" {
		raw, err := os.ReadFile(cfg.Props)
		if err != nil {
			return err
		}
		if opts, err = strif.ParseTemplateOptions(raw); err != nil {
			return err
		}
	}

	t, err := f.FromFile(cfg.Template, opts)
	if err != nil {
		return err
	}

	data, err := loadData(cfg.Data, stdin)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	compileOpts := strif.CompileOptions{IgnoreTransformers: cfg.Ignore}
	items, isList := data.AsList()
	if cfg.Each && isList {
		for _, item := range items {
			if err := t.Write(&buf, item, compileOpts); err != nil {
				return err
			}
			buf.WriteByte('\n')
		}
	} else if err := t.Write(&buf, data, compileOpts); err != nil {
		return err
	}
	logger.Debug("template rendered", "template", cfg.Template, "bytes", buf.Len())

	if cfg.Output == "" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}
	if err := atomic.WriteFile(cfg.Output, &buf); err != nil {
		return fmt.Errorf("failed to write output %s: %w", cfg.Output, err)
	}
	logger.Info("output written", "path", cfg.Output)
	return nil
}

// loadData decodes YAML (and therefore JSON) data. An empty path is no data.
func loadData(path string, stdin io.Reader) (strif.Value, error) {
	var (
		raw []byte
		err error
	)
	switch path {
	case "":
		return strif.Null(), nil
	case "-":
		raw, err = io.ReadAll(stdin)
	default:
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return strif.Null(), err
	}
	if strings.TrimSpace(string(raw)) == "" {
		return strif.Null(), nil
	}
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return strif.Null(), fmt.Errorf("failed to parse data %s: %w", path, err)
	}
	return strif.ValueOf(doc), nil
}
