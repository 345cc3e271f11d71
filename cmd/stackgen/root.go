package stackgen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/railwayapp/stackgen/internal/config"
	"github.com/railwayapp/stackgen/internal/filesystems"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	configErr error

	cfg *config.Config

	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "stackgen",
	Short: "Detect a project's framework and scaffold instructions for AI coding assistants",
	Long: `stackgen inspects a source tree and works out which framework it is built on:
1. Scan - Collect files, manifests and source patterns within bounded cost
2. Detect - Score every known framework and resolve its variant and platforms
3. Analyze - Add package managers, languages, deploy targets and environment
4. Init - Render AGENTS.md, CLAUDE.md and friends from the resolved stack`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configErr != nil {
			return configErr
		}
		c, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		cfg = c
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(cfg.LogLevel()).
			With().Timestamp().Logger()
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug().Str("file", used).Msg("using config file")
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.stackgen.yaml or ./.stackgen.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(detectCmd, analyzeCmd, initCmd)
}

func initConfig() {
	config.Configure(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".stackgen")
	}

	if err := viper.ReadInConfig(); err != nil {
		// only an explicitly requested file has to exist
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			configErr = fmt.Errorf("reading config: %w", err)
		}
	}
}

// project is an opened source tree ready for detection.
type project struct {
	fs    filesystems.FileSystem
	root  string
	local bool
}

func (p *project) Close() {
	if err := filesystems.Cleanup(p.fs); err != nil {
		logger.Warn().Err(err).Msg("failed to clean up project checkout")
	}
}

// openProject resolves a path or git/github URI. A file path means its
// directory.
func openProject(ctx context.Context, args []string) (*project, error) {
	source := "."
	if len(args) > 0 {
		source = args[0]
	}

	local := !strings.Contains(source, "://") || strings.HasPrefix(source, "file://")
	if !strings.Contains(source, "://") {
		if stat, err := os.Stat(source); err == nil && !stat.IsDir() {
			source = filepath.Dir(source)
		}
		if abs, err := filepath.Abs(source); err == nil {
			source = abs
		}
	}

	filesystem, err := filesystems.NewFileSystem(ctx, source, cfg.GitHub.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", source, err)
	}
	logger.Debug().Str("source", source).Msg("opened project")

	return &project{
		fs:    filesystem,
		root:  filesystems.BasePath(source),
		local: local,
	}, nil
}
