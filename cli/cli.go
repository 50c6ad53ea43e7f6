package cli

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/thanhnguyen2187/horadric/d2item"
	"github.com/thanhnguyen2187/horadric/d2item/dkind"
	"github.com/thanhnguyen2187/horadric/d2item/dregistry"
	"github.com/thanhnguyen2187/horadric/dfile"
	"github.com/thanhnguyen2187/horadric/ds"
	"github.com/thanhnguyen2187/horadric/ui"
)

type (
	Args struct {
		Classify  *ClassifyCmd `arg:"subcommand:classify" help:"print the container kind of each file"`
		Decode    *DecodeCmd   `arg:"subcommand:decode" help:"decode the items of each file to JSON"`
		Browse    *BrowseCmd   `arg:"subcommand:browse" help:"browse the items of the files in a directory"`
		LogLevel  string       `arg:"--log-level,env:HORADRIC_LOG_LEVEL" default:"info" help:"debug, info, warn or error"`
		LogFormat string       `arg:"--log-format,env:HORADRIC_LOG_FORMAT" default:"text" help:"text or json"`
	}
	ClassifyCmd struct {
		Paths []string `arg:"positional,required" placeholder:"FILE"`
	}
	DecodeCmd struct {
		Paths    []string `arg:"positional,required" placeholder:"FILE"`
		DataDir  string   `arg:"--data-dir,env:HORADRIC_DATA_DIR" help:"directory with Armor.txt, Weapons.txt, Misc.txt and ItemStatCost.txt" placeholder:"DIR"`
		Registry string   `arg:"--registry,env:HORADRIC_REGISTRY" help:"YAML registry file" placeholder:"FILE"`
		To       string   `help:"path to destination file, stdout when empty" placeholder:"FILE"`
		Force    bool     `help:"overwrite the destination file"`
		Flat     bool     `help:"list socketed items right after their parent"`
		Jobs     int      `arg:"--jobs,env:HORADRIC_JOBS" default:"4" help:"files decoded at the same time"`
	}
	BrowseCmd struct {
		Dir      string `arg:"positional" default:"." placeholder:"DIR"`
		DataDir  string `arg:"--data-dir,env:HORADRIC_DATA_DIR" help:"directory with Armor.txt, Weapons.txt, Misc.txt and ItemStatCost.txt" placeholder:"DIR"`
		Registry string `arg:"--registry,env:HORADRIC_REGISTRY" help:"YAML registry file" placeholder:"FILE"`
	}
)

func (Args) Description() string {
	des := strings.Join(
		[]string{
			"Stay awhile and listen.\n",
			"A CLI utility to list the items stored in Diablo II character saves (.d2s),",
			"PlugY stashes (.d2x, .sss) and ATMA/GoMule stashes (.d2x).",
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

// LoadRegistry prefers the game's text tables in dataDir over the YAML file at registryPath.
func LoadRegistry(dataDir string, registryPath string) (*dregistry.Registry, error) {
	switch {
	case dataDir != "":
		registry, err := dregistry.LoadDir(dataDir)
		if err != nil {
			return nil, errors.Wrap(err, "LoadRegistry error")
		}
		return registry, nil
	case registryPath != "":
		file, err := os.Open(registryPath)
		if err != nil {
			return nil, errors.Wrap(err, "LoadRegistry error")
		}
		defer file.Close()
		registry, err := dregistry.LoadYAML(file)
		if err != nil {
			return nil, errors.Wrapf(err, `LoadRegistry error reading "%s"`, registryPath)
		}
		return registry, nil
	default:
		return nil, errors.New("LoadRegistry error: either --data-dir or --registry is needed")
	}
}

func StartClassifying(logger *slog.Logger, w io.Writer, paths []string) error {
	kinds := ds.NewLinkedHashMap[string, dkind.Kind]()
	for _, path := range paths {
		head, err := dfile.ReadHead(path, dkind.MagicSize)
		if err != nil {
			return errors.Wrap(err, "StartClassifying error")
		}
		kind := d2item.ClassifyContainer(head)
		logger.Debug("classified file", slog.String("path", path), slog.String("kind", kind.String()))
		kinds.Put(path, kind)
	}

	bs, err := ds.DumpIndentedJSON(kinds)
	if err != nil {
		return errors.Wrap(err, "StartClassifying error")
	}
	_, err = w.Write(append(bs, '\n'))
	return err
}

func StartDecoding(logger *slog.Logger, stdout io.Writer, cmd DecodeCmd) error {
	if cmd.To != "" && CheckExistence(cmd.To) && !cmd.Force {
		return errors.Errorf(`destination file "%s" existed, use --force to allow overwriting`, cmd.To)
	}
	missing := lo.Reject(cmd.Paths, func(path string, _ int) bool { return CheckExistence(path) })
	if len(missing) > 0 {
		return errors.Errorf("source files do not exist: %s", strings.Join(missing, ", "))
	}

	registry, err := LoadRegistry(cmd.DataDir, cmd.Registry)
	if err != nil {
		return err
	}
	logger.Info(
		"loaded registry",
		slog.Int("items", registry.NumItems()),
		slog.Int("stats", registry.NumStats()),
	)
	logger.Debug("registry stat ids", slog.Any("ids", registry.StatIDs()))

	results, err := DecodeFiles(logger, registry, cmd.Paths, cmd.Jobs, cmd.Flat)
	if err != nil {
		return err
	}
	bs, err := ds.DumpIndentedJSON(results)
	if err != nil {
		return errors.Wrap(err, "StartDecoding error")
	}

	if cmd.To == "" {
		_, err := stdout.Write(append(bs, '\n'))
		return err
	}
	if err := os.WriteFile(cmd.To, bs, 0644); err != nil {
		return errors.Wrapf(err, `StartDecoding error writing to "%s"`, cmd.To)
	}
	logger.Info("done decoding", slog.String("to", cmd.To), slog.Int("files", results.Len()))
	return nil
}

func StartBrowsing(cmd BrowseCmd) error {
	registry, err := LoadRegistry(cmd.DataDir, cmd.Registry)
	if err != nil {
		return err
	}
	return ui.Start(cmd.Dir, registry)
}

func Start() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		println("Error happened reading .env: " + err.Error())
	}

	args := Args{}
	parser := arg.MustParse(&args)
	logger := NewLogger(os.Stderr, args.LogLevel, args.LogFormat)

	var err error
	switch {
	case args.Classify != nil:
		err = StartClassifying(logger, os.Stdout, args.Classify.Paths)
	case args.Decode != nil:
		err = StartDecoding(logger, os.Stdout, *args.Decode)
	case args.Browse != nil:
		err = StartBrowsing(*args.Browse)
	default:
		parser.WriteHelp(os.Stdout)
		return
	}
	if err != nil {
		logger.Error("failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
