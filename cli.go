package srcfix

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type CLIConfig struct {
	Catalog     string
	Base        string
	DryRun      bool
	Verbose     bool
	Undo        bool
	Redo        bool
	NoNvim      bool
	NoAnimation bool
	Extensions  []string
	Files       []string
	Completion  string
}

var cliCfg = &CLIConfig{}

var rootCmd = &cobra.Command{
	Use:   "srcfix",
	Short: "Apply a catalog of source fixes to files in batch.",
	Long: `Apply a catalog of per-file rewrite rules and useCallback wraps.

The catalog is YAML, given with --catalog or piped as raw YAML or as a
markdown document carrying fenced yaml blocks.

Example: srcfix -c fixes.yaml -e tsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cliCfg.Completion != "" {
			return handleCompletion(cmd)
		}

		if cliCfg.Undo && cliCfg.Redo {
			return fmt.Errorf("error: --undo and --redo are mutually exclusive")
		}

		normalizeExtensions()

		cfg := &Config{
			CatalogPath: cliCfg.Catalog,
			Base:        cliCfg.Base,
			DryRun:      cliCfg.DryRun,
			Undo:        cliCfg.Undo,
			Redo:        cliCfg.Redo,
			NoNvim:      cliCfg.NoNvim,
			Extensions:  cliCfg.Extensions,
			Files:       cliCfg.Files,
		}

		log, err := newLogger(cliCfg.Verbose)
		if err != nil {
			return err
		}
		defer log.Sync()

		app, err := NewApp(cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		ui := NewTUI(app, cliCfg.NoAnimation || cliCfg.DryRun)
		return ui.Run()
	},
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	config.Encoding = "console"
	return config.Build()
}

func handleCompletion(cmd *cobra.Command) error {
	switch cliCfg.Completion {
	case "bash":
		return cmd.Root().GenBashCompletion(os.Stdout)
	case "zsh":
		return cmd.Root().GenZshCompletion(os.Stdout)
	case "fish":
		return cmd.Root().GenFishCompletion(os.Stdout, true)
	case "powershell":
		return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
	default:
		return fmt.Errorf("unsupported shell for completion: %s", cliCfg.Completion)
	}
}

func normalizeExtensions() {
	for i, ext := range cliCfg.Extensions {
		if len(ext) > 0 && ext[0] != '.' {
			cliCfg.Extensions[i] = "." + ext
		}
	}
}

func init() {
	rootCmd.Flags().StringVar(&cliCfg.Completion, "completion", "", "Generate completion script")
	rootCmd.Flags().StringVarP(&cliCfg.Catalog, "catalog", "c", "", "Catalog file (default: stdin or clipboard)")
	rootCmd.Flags().StringVarP(&cliCfg.Base, "base", "b", "", "Base directory for relative paths")
	rootCmd.Flags().BoolVarP(&cliCfg.DryRun, "dry-run", "n", false, "Print diffs instead of writing")
	rootCmd.Flags().BoolVarP(&cliCfg.Verbose, "verbose", "v", false, "Log per-rule diagnostics")
	rootCmd.Flags().BoolVar(&cliCfg.NoNvim, "no-nvim", false, "Do not reload buffers in a running nvim")
	rootCmd.Flags().BoolVar(&cliCfg.NoAnimation, "no-animation", false, "Disable spinner")
	rootCmd.Flags().StringSliceVarP(&cliCfg.Extensions, "extension", "e", []string{}, "Filter by extension")
	rootCmd.Flags().StringSliceVarP(&cliCfg.Files, "file", "f", []string{}, "Filter by files")
	rootCmd.Flags().BoolVarP(&cliCfg.Undo, "undo", "u", false, "Undo last run")
	rootCmd.Flags().BoolVarP(&cliCfg.Redo, "redo", "r", false, "Redo last undone run")

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}

func Execute() error {
	return rootCmd.Execute()
}
