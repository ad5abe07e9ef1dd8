package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version     = "dev" // Will be set during build
	showVersion bool
)

func main() {
	cobra.CheckErr(rootCmd.Execute())
}

var rootCmd = &cobra.Command{
	Use:           "pgauth",
	Short:         "PostgreSQL Basic-auth gate tools",
	SilenceUsage:  false,
	SilenceErrors: true,
	Long: `pgauth - provisioning and diagnostic tools for the PostgreSQL
Basic-auth gate.

The gate itself is embedded in a host process as a library; this command
covers the operational edges around it:

  pgauth hash    generate a stored password value for any supported scheme
  pgauth check   run one authentication round against a configured database

Directory configuration is a JSON file:
{
    "connection": {"host": "db.local", "database": "auth"},
    "password_table": "users",
    "username_field": "uid",
    "password_field": "pw",
    "group_table": "usergroups",
    "group_field": "grp",
    "group_user_field": "uid",
    "hash_type": "netepi",
    "cache_passwords": true
}`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("pgauth %s\n", version)
			return nil
		}
		return cmd.Help()
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "print version and exit")
	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(checkCmd)
}
