package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	var (
		product    string
		target     string
		buildTests bool
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the package",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			subset, err := buildSubset(product, target, buildTests)
			if err != nil {
				return err
			}
			tool, err := c.newTool(cmd)
			if err != nil {
				return err
			}
			return tool.Build(cmd.Context(), subset, tool.Options().Manifest.CacheBuildManifest)
		},
	}
	cmd.Flags().StringVar(&product, "product", "", "Build the specified product")
	cmd.Flags().StringVar(&target, "target", "", "Build the specified target")
	cmd.Flags().BoolVar(&buildTests, "build-tests", false, "Build both source and test targets")
	return cmd
}

func buildSubset(product, target string, buildTests bool) (domain.BuildSubset, error) {
	set := 0
	for _, given := range []bool{product != "", target != "", buildTests} {
		if given {
			set++
		}
	}
	if set > 1 {
		return domain.BuildSubset{}, zerr.Wrap(domain.ErrConfiguration, "--product, --target and --build-tests are mutually exclusive")
	}

	switch {
	case product != "":
		return domain.BuildSubset{Kind: domain.SubsetProduct, Name: product}, nil
	case target != "":
		return domain.BuildSubset{Kind: domain.SubsetTarget, Name: target}, nil
	case buildTests:
		return domain.BuildSubset{Kind: domain.SubsetAllIncludingTests}, nil
	default:
		return domain.BuildSubset{Kind: domain.SubsetAllExcludingTests}, nil
	}
}
