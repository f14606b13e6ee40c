package cmd

import (
	"io"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/gamedevtech/tao/gen"
	"github.com/gamedevtech/tao/model"
)

var (
	tiersTier     string
	tiersFunction string
)

var tiersCmd = &cobra.Command{
	Use:   "tiers [descriptors.yaml]",
	Short: "Show how each function is resolved on each platform tier",
	Long: `Prints one row per function: its version, whether each platform tier binds
it eagerly through the native library or lazily by name lookup, and which
wrapper overloads it gets. With no argument, prints the tier version sets.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTiers,
}

func init() {
	tiersCmd.Flags().StringVar(&tiersTier, "tier", "", "Show only this tier (legacy_windows, modern_windows, x11)")
	tiersCmd.Flags().StringVar(&tiersFunction, "function", "", "Show only this function, by descriptor name (e.g. glGetString_)")
	rootCmd.AddCommand(tiersCmd)
}

func runTiers(cmd *cobra.Command, args []string) error {
	tiers, err := selectTiers(tiersTier)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		renderTable(cmd.OutOrStdout(), []string{"TIER", "REGION", "VERSIONS"}, tierSummaryRows(tiers))
		return nil
	}

	set, _, err := loadAndValidate(args[0], false)
	if err != nil {
		return err
	}
	functions, err := selectFunctions(set, tiersFunction)
	if err != nil {
		return err
	}

	header := []string{"NAME", "VERSION"}
	for _, tier := range tiers {
		header = append(header, strings.ToUpper(tier.Name))
	}
	header = append(header, "WRAPPERS")

	renderTable(cmd.OutOrStdout(), header, functionTierRows(functions, tiers))
	return nil
}

// selectTiers returns every tier, or only the named one.
func selectTiers(name string) ([]gen.PlatformTier, error) {
	if name == "" {
		return gen.PlatformTiers, nil
	}
	tier := gen.TierByName(name)
	if tier == nil {
		known := make([]string, len(gen.PlatformTiers))
		for i, t := range gen.PlatformTiers {
			known[i] = t.Name
		}
		return nil, errors.WithHintf(errors.Newf("unknown tier %q", name),
			"known tiers: %s", strings.Join(known, ", "))
	}
	return []gen.PlatformTier{*tier}, nil
}

// selectFunctions returns every function in set, or only the named one.
func selectFunctions(set *model.DescriptorSet, name string) ([]*model.Function, error) {
	if name == "" {
		return set.Functions, nil
	}
	f := set.FunctionByName(name)
	if f == nil {
		return nil, errors.WithHint(errors.Newf("no function %q in descriptors", name),
			"use the descriptor name, including any trailing underscore")
	}
	return []*model.Function{f}, nil
}

func renderTable(w io.Writer, header []string, data [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
}

func tierSummaryRows(tiers []gen.PlatformTier) [][]string {
	var data [][]string
	for _, tier := range tiers {
		data = append(data, []string{tier.Name, tier.Region, strings.Join(tier.Versions, " ")})
	}
	return data
}

// functionTierRows builds the per-function table, core functions in version
// order and extensions last.
func functionTierRows(functions []*model.Function, tiers []gen.PlatformTier) [][]string {
	functions = append([]*model.Function(nil), functions...)
	sortByVersion(functions)

	var data [][]string
	for _, f := range functions {
		version := f.Version
		if f.Extension {
			version = "extension"
		}
		row := []string{f.EntryPoint(), version}
		for i := range tiers {
			res := gen.ResolutionLazy
			if tiers[i].Imports(f) {
				res = gen.ResolutionEager
			}
			row = append(row, res)
		}

		plan := gen.PlanWrapper(f)
		wrappers := "-"
		switch {
		case plan.SkipReason != "":
			wrappers = "skipped (" + plan.SkipReason + ")"
		case len(plan.Overloads) > 0:
			kinds := make([]string, len(plan.Overloads))
			for i, k := range plan.Overloads {
				kinds[i] = string(k)
			}
			wrappers = strings.Join(kinds, ",")
		}
		data = append(data, append(row, wrappers))
	}
	return data
}

// sortByVersion orders functions by API version. Extensions and versions
// that do not parse sort after every core version; ties keep input order.
func sortByVersion(functions []*model.Function) {
	parsed := make(map[*model.Function]*semver.Version, len(functions))
	for _, f := range functions {
		if f.Extension {
			continue
		}
		if v, err := semver.NewVersion(f.Version); err == nil {
			parsed[f] = v
		}
	}

	sort.SliceStable(functions, func(i, j int) bool {
		vi, vj := parsed[functions[i]], parsed[functions[j]]
		switch {
		case vi == nil:
			return false
		case vj == nil:
			return true
		default:
			return vi.LessThan(vj)
		}
	})
}
