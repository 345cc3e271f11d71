package stackgen

import (
	"errors"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/railwayapp/stackgen/internal/prompt"
	"github.com/railwayapp/stackgen/internal/scaffold"
	"github.com/railwayapp/stackgen/internal/stack"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	initFramework   string
	initVariant     string
	initTargets     []string
	initInteractive bool
	initForce       bool
	initDryRun      bool
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write AI assistant instruction files for a project",
	Long: `Init analyzes the project and renders one instruction file per target:
AGENTS.md, CLAUDE.md, .github/copilot-instructions.md or a Cursor rule.
Existing files are skipped unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	flags := initCmd.Flags()
	flags.StringVar(&initFramework, "framework", "", "declare the framework instead of detecting it")
	flags.StringVar(&initVariant, "variant", "", "declare the variant, requires --framework")
	flags.StringSliceVarP(&initTargets, "targets", "t", nil, "targets to write: "+strings.Join(scaffold.TargetNames(), ", "))
	flags.BoolVarP(&initInteractive, "interactive", "i", false, "confirm or correct the stack interactively")
	flags.BoolVar(&initForce, "force", false, "overwrite existing files")
	flags.BoolVar(&initDryRun, "dry-run", false, "print what would be written without touching the project")
}

func runInit(cmd *cobra.Command, args []string) error {
	if initVariant != "" && initFramework == "" {
		return errors.New("--variant requires --framework")
	}

	names := cfg.Scaffold.Targets
	if cmd.Flags().Changed("targets") {
		names = initTargets
	}
	targets, err := scaffold.ParseTargets(names)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	p, err := openProject(ctx, args)
	if err != nil {
		return err
	}
	defer p.Close()
	if !p.local {
		return errors.New("init writes into the project and needs a local path")
	}

	report, err := analyze(ctx, p)
	if err != nil {
		return err
	}

	s := report.Stack
	if initFramework != "" {
		declared, err := stack.Declared(initFramework, initVariant)
		if err != nil {
			return err
		}
		declared = declared.WithPackageManager(stack.ManagerFor(declared.Framework, report.PackageManagers))
		declared.ProjectName = s.ProjectName
		s = declared
	}

	if initInteractive {
		asker := prompt.NewSurveyAsker(survey.WithStdio(os.Stdin, os.Stderr, os.Stderr))
		s, err = prompt.NewFlow(asker).Run(s, report.PackageManagers)
		if err != nil {
			return err
		}
	}

	if !s.Detected() {
		logger.Warn().Msg("no framework detected, writing generic instructions")
	}

	renderer, err := scaffold.NewRenderer(scaffold.NewRegistry())
	if err != nil {
		return err
	}
	files, err := renderer.RenderAll(targets, scaffold.NewData(s, report))
	if err != nil {
		return err
	}

	writer := scaffold.NewWriter(afero.NewOsFs(), p.root,
		scaffold.WithForce(initForce || cfg.Scaffold.Force),
		scaffold.WithDryRun(initDryRun),
		scaffold.WithWriterLogger(logger),
	)
	results, err := writer.Write(files)
	if err != nil {
		return err
	}

	printWriteResults(cmd.OutOrStdout(), results)
	return nil
}
