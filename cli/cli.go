package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/thanhnguyen2187/gom-savior/config"
	"github.com/thanhnguyen2187/gom-savior/store"
)

type (
	Args struct {
		Config   string  `arg:"--config,env:GOM_CONFIG" help:"path to a YAML config file" placeholder:"FILE"`
		Workers  *int    `arg:"--workers,env:GOM_WORKERS" help:"number of records decoded at once" placeholder:"N"`
		LogLevel *string `arg:"--log-level" help:"debug, info, warn or error" placeholder:"LEVEL"`

		Decode *DecodeCmd `arg:"subcommand:decode" help:"decode an export to plain JSON"`
		Split  *SplitCmd  `arg:"subcommand:split" help:"write the fields of every record to its own file"`
		Enums  *EnumsCmd  `arg:"subcommand:enums" help:"generate Go enums from GOM.json and clientGom.json"`
		Index  *IndexCmd  `arg:"subcommand:index" help:"save an export into the index database"`
		Browse *BrowseCmd `arg:"subcommand:browse" help:"browse an export in the terminal"`
	}
	// Env is what every command runs with once flags, environment and config
	// file are merged.
	Env struct {
		Config *config.Config
		Logger *slog.Logger
	}
	Command interface {
		Run(env Env) (string, error)
	}
)

func (Args) Description() string {
	des := strings.Join(
		[]string{
			"A CLI utility to decode GOM exports (a game engine's object model dumped",
			"as JSON) into typed values, plain JSON, split record files,",
			"generated Go enums or an SQL index.",
		},
		"\n",
	)
	des += "\n"
	return des
}

func CheckExistence(path string) bool {
	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false
	}
	return err == nil
}

// LoadConfig merges the config file (given or found from the working
// directory) with the flags and environment in args.
func LoadConfig(args Args) (*config.Config, error) {
	path := args.Config
	if path == "" {
		cwd, err := os.Getwd()
		if err == nil {
			path = config.Find(cwd)
		}
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	overrides := config.Overrides{
		Workers:  args.Workers,
		LogLevel: args.LogLevel,
	}
	if args.Index != nil {
		overrides.DBURL = args.Index.DBURL
	}
	if skipInvalid(args) {
		skip := true
		overrides.SkipInvalid = &skip
	}
	cfg.Apply(overrides)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !store.IsSupportedURL(cfg.DBURL) {
		return nil, errors.Errorf("config: unsupported db_url `%s`", cfg.DBURL)
	}
	return cfg, nil
}

func skipInvalid(args Args) bool {
	switch {
	case args.Decode != nil:
		return args.Decode.SkipInvalid
	case args.Split != nil:
		return args.Split.SkipInvalid
	case args.Index != nil:
		return args.Index.SkipInvalid
	}
	return false
}

func command(args Args) Command {
	switch {
	case args.Decode != nil:
		return args.Decode
	case args.Split != nil:
		return args.Split
	case args.Enums != nil:
		return args.Enums
	case args.Index != nil:
		return args.Index
	case args.Browse != nil:
		return args.Browse
	}
	return nil
}

func fail(err error) {
	color.New(color.FgRed).Fprintln(os.Stderr, fmt.Sprintf("Error: %s", err))
	os.Exit(1)
}

func Start() {
	args := Args{}
	parser := arg.MustParse(&args)

	cmd := command(args)
	if cmd == nil {
		parser.WriteHelp(os.Stdout)
		return
	}

	cfg, err := LoadConfig(args)
	if err != nil {
		fail(err)
	}
	level, _ := cfg.SlogLevel()
	env := Env{
		Config: cfg,
		Logger: NewLogger(os.Stderr, level),
	}

	msg, err := cmd.Run(env)
	if err != nil {
		fail(err)
	}
	if msg != "" {
		color.Green("%s", msg)
	}
}
