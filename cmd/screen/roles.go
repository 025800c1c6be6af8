package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"alfredoptarigan/ats-screener/internal/models"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the tech roles accepted by --role",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printRoles(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(rolesCmd)
}

func printRoles(w io.Writer) error {
	for _, role := range models.RoleTags {
		if _, err := fmt.Fprintln(w, role); err != nil {
			return err
		}
	}
	return nil
}
