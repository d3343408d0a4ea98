package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/zugferd/profile"
	"github.com/lehigh-university-libraries/zugferd/schema"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List ZUGFeRD profiles",
	Long:  `List and inspect the ZUGFeRD 1.0 profiles and the fields each one defines.`,
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Available profiles:")
		for _, p := range profile.Default.Profiles() {
			desc := ""
			if p.Description() != "" {
				desc = " - " + p.Description()
			}
			fmt.Fprintf(out, "  %s%s\n", p.Name(), desc)
		}
		return nil
	},
}

var profilesShowCmd = &cobra.Command{
	Use:   "show [profile]",
	Short: "Show profile details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profileName := args[0]

		if _, ok := profile.Default.Lookup(profileName); !ok {
			return &profile.UnknownProfileError{Value: profileName}
		}

		for _, e := range profile.Default.Entries() {
			if e.Name != profileName {
				continue
			}
			// Print as YAML
			out, err := yaml.Marshal(e)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
		}
		return nil
	},
}

var profilesFieldsCmd = &cobra.Command{
	Use:   "fields [profile]",
	Short: "List record types and segments a profile defines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profileName := args[0]

		v, err := schema.Default().Variant(profileName)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Fields in %s profile (root %s):\n\n", profileName, v.RootType())
		for _, typ := range v.Types() {
			fmt.Fprintf(out, "%s\n", typ)
			for _, seg := range v.Segments(typ) {
				fmt.Fprintf(out, "  %s\n", seg)
			}
		}
		return nil
	},
}

func init() {
	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesShowCmd)
	profilesCmd.AddCommand(profilesFieldsCmd)
}
