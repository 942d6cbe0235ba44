package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

type toolchainDescription struct {
	Triple             string   `yaml:"triple"`
	SDK                string   `yaml:"sdk,omitempty"`
	BinDir             string   `yaml:"bin_dir"`
	Compiler           string   `yaml:"compiler"`
	CCompiler          string   `yaml:"c_compiler,omitempty"`
	Archiver           string   `yaml:"archiver,omitempty"`
	Version            string   `yaml:"version,omitempty"`
	Archs              []string `yaml:"archs,omitempty"`
	ExtraCFlags        []string `yaml:"extra_cc_flags,omitempty"`
	ExtraCXXFlags      []string `yaml:"extra_cxx_flags,omitempty"`
	ExtraCompilerFlags []string `yaml:"extra_compiler_flags,omitempty"`
	ExtraLinkerFlags   []string `yaml:"extra_linker_flags,omitempty"`
	Cross              bool     `yaml:"cross,omitempty"`
}

func describeToolchain(tc *domain.Toolchain) toolchainDescription {
	d := tc.Destination
	return toolchainDescription{
		Triple:             d.Target.String(),
		SDK:                d.SDK,
		BinDir:             d.BinDir,
		Compiler:           tc.Compilers.Compiler,
		CCompiler:          tc.Compilers.CCompiler,
		Archiver:           tc.Compilers.Archiver,
		Version:            tc.Version,
		Archs:              d.Archs,
		ExtraCFlags:        d.ExtraCFlags,
		ExtraCXXFlags:      d.ExtraCXXFlags,
		ExtraCompilerFlags: d.ExtraCompilerFlags,
		ExtraLinkerFlags:   d.ExtraLinkerFlags,
		Cross:              d.Cross != nil && d.Cross.IsCross,
	}
}

func (c *CLI) newDescribeToolchainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe-toolchain",
		Short: "Print the resolved destination toolchain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tool, err := c.newTool(cmd)
			if err != nil {
				return err
			}
			tc, err := tool.DestinationToolchain()
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(describeToolchain(tc)); err != nil {
				return zerr.Wrap(err, "failed to describe toolchain")
			}
			return enc.Close()
		},
	}
}
