package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/MattiKrause/duplis/internal/config"
	"github.com/MattiKrause/duplis/internal/core/action"
	"github.com/MattiKrause/duplis/internal/core/classifier"
	"github.com/MattiKrause/duplis/internal/domain"
	"github.com/MattiKrause/duplis/internal/engine"
	"github.com/MattiKrause/duplis/internal/filter"
	"github.com/MattiKrause/duplis/internal/logger"
	"github.com/MattiKrause/duplis/internal/scanner"
)

type rootFlags struct {
	recurse        bool
	followSymlinks bool
	filesFrom      string

	orderBy []string

	actDelete   bool
	actHardlink bool
	actSymlink  bool

	immediate   bool
	interactive bool
	wout        string

	minSize  int64
	maxSize  int64
	nonZero  bool
	extBl    []string
	extWl    []string
	pathBl   []string
	pathBlAt []string

	noContentEq bool
	noPermEq    bool

	threads int

	logInfo    []string
	setLogInfo []string
	logLevel   string
	logFormat  string
	logFile    string
	configFile string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "duplis [flags] [DIRS...]",
		Short: "find duplicate files and report, delete or relink them",
		Long: "Find duplicate files across directory trees.\n" +
			"By default duplis performs a dry run and only prints the duplicates it\n" +
			"found; specify an action (--delete, --rehardlink, --resymlink) together\n" +
			"with --immediate or --interactive to change that.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, flags)
		},
	}

	fs := cmd.Flags()
	fs.BoolVarP(&flags.recurse, "recurse", "r", false, "search all listed directories recursively")
	fs.BoolVarP(&flags.followSymlinks, "symlink", "s", false, "follow symlinks to files and directories")
	fs.StringVar(&flags.filesFrom, "filesfrom", "", "read newline-delimited candidate paths from FILE ('-' for stdin) instead of walking DIRS")

	fs.StringSliceVarP(&flags.orderBy, "orderby", "o", nil,
		"order of files within a set (modtime|rmodtime|createtime|rcreatetime|alphabetic|ralphabetic|as_is); the smallest is the original")

	fs.BoolVarP(&flags.actDelete, "delete", "d", false, "delete duplicated files")
	fs.BoolVarP(&flags.actHardlink, "rehardlink", "l", false, "replace duplicated files with a hard link")
	fs.BoolVarP(&flags.actSymlink, "resymlink", "L", false, "replace duplicated files with a symlink")

	fs.BoolVarP(&flags.immediate, "immediate", "u", false, "execute the specified action without asking")
	fs.BoolVarP(&flags.interactive, "interactive", "i", false, "execute the specified action after confirmation on the console")
	fs.StringVar(&flags.wout, "wout", "", "write duplicates machine-readably (pairwise|setwise)")
	fs.Lookup("wout").NoOptDefVal = "pairwise"

	fs.Int64Var(&flags.minSize, "minsize", 0, "only consider files with >= minsize bytes")
	fs.Int64Var(&flags.maxSize, "maxsize", 0, "only consider files with < maxsize bytes")
	fs.BoolVarP(&flags.nonZero, "nonzero", "Z", false, "only consider non-zero sized files")
	fs.StringSliceVar(&flags.extBl, "extbl", nil, "files with these extensions are not processed ('~' means no extension)")
	fs.StringSliceVar(&flags.extWl, "extwl", nil, "ONLY files with these extensions are processed ('~' means no extension)")
	fs.StringSliceVar(&flags.pathBl, "pathbl", nil, "files with these paths as prefix are not processed")
	fs.StringSliceVar(&flags.pathBlAt, "pathblloc", nil, "files containing newline-separated path prefix blacklists")

	fs.BoolVar(&flags.noContentEq, "nocontenteq", false, "skip the byte-by-byte comparison that guards against fingerprint collisions")
	fs.BoolVar(&flags.noPermEq, "nopermeq", false, "consider files with different permissions equal")

	fs.IntVarP(&flags.threads, "threads", "t", 1, "use multi-threading (optionally provide the number of threads)")
	fs.Lookup("threads").NoOptDefVal = "0"

	fs.StringSliceVar(&flags.logInfo, "loginfo", nil, "update the diagnostic categories (+CAT turns on, ~CAT turns off)")
	fs.StringSliceVar(&flags.setLogInfo, "setloginfo", nil, "set the enabled diagnostic categories exactly")
	fs.StringVar(&flags.logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	fs.StringVar(&flags.logFormat, "log-format", "text", "log format (text|json)")
	fs.StringVar(&flags.logFile, "log-file", "", "also write logs to this file (with rotation)")
	fs.StringVar(&flags.configFile, "config", "", "config file (default: duplis.yaml in ., user config dir, ~/.duplis)")

	return cmd
}

func run(cmd *cobra.Command, args []string, flags *rootFlags) error {
	if err := logger.Init(logger.Config{
		Level:  logger.ParseLevel(flags.logLevel),
		Format: logger.ParseFormat(flags.logFormat),
		File: logger.FileConfig{
			Enabled:   flags.logFile != "",
			Path:      flags.logFile,
			MaxSizeMB: 50, MaxBackups: 3, MaxAgeDays: 14,
		},
	}); err != nil {
		return err
	}
	defer logger.Shutdown()

	// configuration errors surface once, through the returned error
	if err := applyLogRouting(flags); err != nil {
		return err
	}

	opts, err := buildOptions(cmd, args, flags)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runEngine(ctx, opts, flags)
}

func applyLogRouting(flags *rootFlags) error {
	if len(flags.setLogInfo) > 0 {
		var cats []logger.Category
		for _, name := range flags.setLogInfo {
			if name == "~" {
				continue // explicit empty set marker
			}
			cat, err := logger.ParseCategory(name)
			if err != nil {
				return err
			}
			cats = append(cats, cat)
		}
		logger.SetEnabled(cats)
		return nil
	}

	for _, change := range flags.logInfo {
		if len(change) < 2 || (change[0] != '+' && change[0] != '~') {
			return fmt.Errorf("category change must start with '+' or '~': %s", change)
		}
		cat, err := logger.ParseCategory(change[1:])
		if err != nil {
			return err
		}
		logger.Toggle(cat, change[0] == '+')
	}
	return nil
}

func buildOptions(cmd *cobra.Command, args []string, flags *rootFlags) (config.Options, error) {
	opts := config.Default()

	if len(args) > 0 {
		opts.Dirs = args
	}
	opts.Recurse = flags.recurse
	opts.FollowSymlinks = flags.followSymlinks
	opts.ListInput = flags.filesFrom != ""
	if flags.filesFrom != "" && len(args) > 0 {
		return opts, fmt.Errorf("%w: --filesfrom and DIRS", domain.ErrConflictingInput)
	}
	if flags.filesFrom != "" {
		opts.Dirs = nil
	}

	opts.Filter = filter.Config{
		MinSize:       flags.minSize,
		MaxSize:       flags.maxSize,
		NonZero:       flags.nonZero,
		ExtBlacklist:  flags.extBl,
		ExtWhitelist:  flags.extWl,
		PathBlacklist: flags.pathBl,
	}
	if len(flags.pathBlAt) > 0 {
		prefixes, err := config.ParsePathListFiles(flags.pathBlAt)
		if err != nil {
			return opts, err
		}
		opts.Filter.PathBlacklist = append(opts.Filter.PathBlacklist, prefixes...)
	}

	if len(flags.orderBy) > 0 {
		opts.OrderBy = flags.orderBy
	}

	actions := 0
	if flags.actDelete {
		opts.Action = domain.ActionDelete
		actions++
	}
	if flags.actHardlink {
		opts.Action = domain.ActionHardlink
		actions++
	}
	if flags.actSymlink {
		opts.Action = domain.ActionSymlink
		actions++
	}
	if actions > 1 {
		return opts, fmt.Errorf("%w: more than one file action given", domain.ErrInvalidConfig)
	}

	switch {
	case flags.immediate && flags.interactive:
		return opts, fmt.Errorf("%w: --immediate and --interactive are mutually exclusive", domain.ErrInvalidConfig)
	case flags.immediate:
		opts.Confirm = domain.ConfirmImmediate
	case flags.interactive:
		opts.Confirm = domain.ConfirmInteractive
	}

	if flags.wout != "" {
		if opts.Confirm != domain.ConfirmOff {
			return opts, fmt.Errorf("%w: --wout cannot be combined with --immediate/--interactive", domain.ErrInvalidConfig)
		}
		format, err := domain.ParseReportFormat(flags.wout)
		if err != nil {
			return opts, err
		}
		opts.ReportFormat = format
	}

	opts.VerifyContent = !flags.noContentEq
	opts.VerifyPerms = !flags.noPermEq
	opts.Workers = flags.threads

	fileCfg, err := config.Load(flags.configFile)
	if err != nil {
		return opts, err
	}
	fileCfg.Apply(&opts, cmd.Flags().Changed)

	if opts.Confirm == domain.ConfirmInteractive {
		if flags.filesFrom == "-" {
			return opts, fmt.Errorf("%w: --interactive needs stdin, which --filesfrom - consumes", domain.ErrConflictingInput)
		}
		if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			return opts, fmt.Errorf("%w: --interactive requires a terminal on stdin", domain.ErrInvalidConfig)
		}
	}

	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

func runEngine(ctx context.Context, opts config.Options, flags *rootFlags) error {
	spec, err := opts.OrderSpec()
	if err != nil {
		return err
	}

	var verifiers []classifier.Verifier
	if opts.VerifyPerms {
		verifiers = append(verifiers, classifier.PermVerifier{})
	}
	if opts.VerifyContent {
		verifiers = append(verifiers, classifier.ContentVerifier{})
	}

	consumer, err := action.ConsumerFor(opts.Action, opts.Confirm, opts.ReportFormat, os.Stdout, os.Stdin)
	if err != nil {
		return err
	}

	fileFilter := filter.New(opts.Filter)
	var source engine.Source
	if flags.filesFrom != "" {
		var reader io.Reader = os.Stdin
		if flags.filesFrom != "-" {
			file, err := os.Open(flags.filesFrom)
			if err != nil {
				return fmt.Errorf("failed to open candidate list: %w", err)
			}
			defer file.Close()
			reader = file
		}
		source = &scanner.ListSource{Reader: reader, Filter: fileFilter}
	} else {
		source = engine.WalkSource{
			Walker: &scanner.Walker{
				Recurse:        opts.Recurse,
				FollowSymlinks: opts.FollowSymlinks,
				Filter:         fileFilter,
			},
			Roots: opts.Dirs,
		}
	}

	eng := &engine.Engine{
		Verifiers: verifiers,
		OrderSpec: spec,
		Consumer:  consumer,
		Workers:   opts.Workers,
	}
	_, err = eng.Run(ctx, source)
	return err
}
