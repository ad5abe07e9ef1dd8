package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tanzilli/pgauth/pkg/access"
	"github.com/tanzilli/pgauth/pkg/authn"
	"github.com/tanzilli/pgauth/pkg/authz"
	"github.com/tanzilli/pgauth/pkg/config"
	"github.com/tanzilli/pgauth/pkg/store"
	"github.com/tanzilli/pgauth/pkg/store/pgexec"
)

var (
	checkConfig   string
	checkUser     string
	checkPassword string
	checkGroups   []string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one authentication round against the database",
	Long: `Authenticate a username and password against the configured
database, exactly as the embedded gate would, and print the verdict.
With --group, group membership rules are evaluated as well.

The check does not write the access log.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if checkConfig == "" {
			return fmt.Errorf("config file is required (use --config)")
		}
		if checkUser == "" {
			return fmt.Errorf("username is required (use --user)")
		}

		cfg, err := config.Load(afero.NewOsFs(), checkConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		password := checkPassword
		if password == "" {
			fmt.Fprint(os.Stderr, "Password: ")
			raw, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Fprintln(os.Stderr)
			if err != nil {
				return fmt.Errorf("reading password: %w", err)
			}
			password = string(raw)
		}

		st, err := store.New(cfg, pgexec.New())
		if err != nil {
			return err
		}
		engine, err := authn.New(cfg, st)
		if err != nil {
			return err
		}

		req := &access.Request{
			Username:    checkUser,
			Password:    password,
			Method:      "GET",
			RequestLine: "pgauth check",
			RemoteAddr:  "127.0.0.1",
			Time:        time.Now(),
			Initial:     false, // suppresses the access-log insert
		}

		verdict := engine.Authenticate(cmd.Context(), req)
		if verdict.Code == access.Allow && len(checkGroups) > 0 {
			az, err := authz.New(cfg, st)
			if err != nil {
				return err
			}
			verdict = az.Authorize(cmd.Context(), req, []authz.Rule{authz.RequireGroups(checkGroups)})
		}

		if verdict.Reason != "" {
			fmt.Printf("%s: %s\n", verdict.Code, verdict.Reason)
		} else {
			fmt.Println(verdict.Code)
		}
		if verdict.Code != access.Allow {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVarP(&checkConfig, "config", "c", "", "directory config file (JSON)")
	checkCmd.Flags().StringVarP(&checkUser, "user", "u", "", "username to authenticate")
	checkCmd.Flags().StringVarP(&checkPassword, "password", "p", "", "password; prompted when empty")
	checkCmd.Flags().StringSliceVarP(&checkGroups, "group", "g", nil, "require membership in one of these groups")
}
