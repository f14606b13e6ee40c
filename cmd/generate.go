package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gamedevtech/tao/config"
	"github.com/gamedevtech/tao/gen"
	"github.com/gamedevtech/tao/logger"
	"github.com/gamedevtech/tao/model"
)

var (
	genOutput      string
	genNamespace   string
	genClass       string
	genNativeLib   string
	genProcAddress string
	genDryRun      bool
	genWatch       bool
	genNoManifest  bool
	genNoValidate  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [descriptors.yaml]",
	Short: "Generate the C# binding module from a descriptor file",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

// flagKeys maps generate flags onto config keys. A flag only overrides the
// config file and environment when it is set on the command line.
var flagKeys = map[string]string{
	"output":         "output_path",
	"namespace":      "output_namespace",
	"class":          "output_class",
	"native-library": "native_library",
	"proc-address":   "proc_address",
}

func init() {
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Output directory (default ./generated)")
	generateCmd.Flags().StringVar(&genNamespace, "namespace", "", "C# namespace of the generated class (default Tao.OpenGl)")
	generateCmd.Flags().StringVar(&genClass, "class", "", "Name of the generated class and output file stem (default Gl)")
	generateCmd.Flags().StringVar(&genNativeLib, "native-library", "", "DllImport module name (default opengl32)")
	generateCmd.Flags().StringVar(&genProcAddress, "proc-address", "", "Symbol lookup primitive called by GetAddress")
	generateCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "Show what would be generated without writing")
	generateCmd.Flags().BoolVar(&genWatch, "watch", false, "Regenerate whenever the descriptor file changes")
	generateCmd.Flags().BoolVar(&genNoManifest, "no-manifest", false, "Skip the binding manifest")
	generateCmd.Flags().BoolVar(&genNoValidate, "no-validate", false, "Skip semantic validation of the descriptors")
	rootCmd.AddCommand(generateCmd)
}

// generateOptions are the per-run switches that do not live in config.
type generateOptions struct {
	DryRun     bool
	NoManifest bool
	NoValidate bool
}

func runGenerate(cmd *cobra.Command, args []string) error {
	path := args[0]

	v, err := config.NewViper(configPath)
	if err != nil {
		return err
	}
	if err := bindGenerateFlags(cmd, v); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	opts := generateOptions{
		DryRun:     genDryRun,
		NoManifest: genNoManifest,
		NoValidate: genNoValidate,
	}

	out := io.Discard
	if !quiet {
		out = cmd.OutOrStdout()
	}

	if _, err := generateOnce(path, cfg, opts, out); err != nil {
		if !genWatch {
			return err
		}
		logger.Logger.Errorw("Generation failed", "file", path, "error", err)
	}
	if !genWatch {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(out, "Watching %s for changes (Ctrl-C to stop)\n", path)
	return watchDescriptors(ctx, path, func() error {
		_, err := generateOnce(path, cfg, opts, out)
		return err
	})
}

func bindGenerateFlags(cmd *cobra.Command, v *viper.Viper) error {
	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return errors.Wrapf(err, "binding --%s", flag)
		}
	}
	return nil
}

// generateOnce loads the descriptor file at path, runs the selected
// generators and writes their output under cfg.OutputPath. It returns the
// paths written (or that would be written, on a dry run).
func generateOnce(path string, cfg *config.Config, opts generateOptions, out io.Writer) ([]string, error) {
	fmt.Fprintf(out, "Generating from %s\n", path)

	set, types, err := loadAndValidate(path, !opts.NoValidate)
	if err != nil {
		return nil, err
	}

	ctx := gen.NewContext(set, types, cfg.Settings(), cfg.OutputPath)
	logPlan(set)

	var allFiles []*gen.OutputFile
	for _, name := range gen.DefaultGenerators(!opts.NoManifest) {
		g, ok := gen.Get(name)
		if !ok {
			return nil, errors.AssertionFailedf("generator %q is not registered", name)
		}

		logger.Logger.Infow("Running generator", "generator", name)
		files, err := g.Generate(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "generator %s", name)
		}
		allFiles = append(allFiles, files...)
	}

	var written []string
	for _, f := range allFiles {
		if opts.DryRun {
			fmt.Fprintf(out, "  Would write: %s (%d bytes)\n", f.Path, len(f.Content))
			written = append(written, f.Path)
			continue
		}
		outPath, err := gen.WriteOutputFile(cfg.OutputPath, f)
		if err != nil {
			return nil, err
		}
		logger.Logger.Infow("Wrote file", "file", outPath, "bytes", len(f.Content))
		written = append(written, outPath)
	}

	if opts.DryRun {
		fmt.Fprintf(out, "Dry run: %d files would be generated.\n", len(written))
	} else {
		fmt.Fprintf(out, "Generated %d files in %s\n", len(written), cfg.OutputPath)
	}
	return written, nil
}

// logPlan reports per-function binding decisions at debug level.
func logPlan(set *model.DescriptorSet) {
	for _, f := range set.Functions {
		plan := gen.PlanWrapper(f)
		logger.Logger.Debugw("Function",
			"name", f.Name,
			"entry_point", f.EntryPoint(),
			"eager_tiers", gen.EagerTiers(f),
			"wrappers", plan.Overloads,
			"wrapper_skipped", plan.SkipReason)
	}
}
