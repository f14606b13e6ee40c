package cmd

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/gamedevtech/tao/loader"
	"github.com/gamedevtech/tao/logger"
	"github.com/gamedevtech/tao/model"
	"github.com/gamedevtech/tao/resolver"
	"github.com/gamedevtech/tao/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate [descriptors.yaml]",
	Short: "Check a descriptor file without generating",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]

	if !quiet {
		fmt.Printf("Validating %s\n", path)
	}

	set, _, err := loadAndValidate(path, true)
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Printf("Validation passed: %d functions, %d constants.\n", len(set.Functions), len(set.Constants))
	}
	return nil
}

// loadAndValidate loads a descriptor file, resolves the types it uses and,
// when semantic is set, runs the semantic checks on it.
func loadAndValidate(path string, semantic bool) (*model.DescriptorSet, resolver.ResolvedTypes, error) {
	set, err := loader.LoadDescriptors(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "loading descriptors")
	}

	types := resolver.ResolveTypes(set.Functions)
	logger.Logger.Infow("Loaded descriptors",
		"file", path,
		"functions", len(set.Functions),
		"constants", len(set.Constants),
		"types", len(types))

	if !semantic {
		return set, types, nil
	}
	result := validate.Validate(set, types)
	if !result.IsValid() {
		return nil, nil, errors.Newf("semantic validation failed:\n%s", result.Error())
	}
	return set, types, nil
}
