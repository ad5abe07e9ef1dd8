package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tanzilli/pgauth/pkg/config"
	"github.com/tanzilli/pgauth/pkg/hashes"
)

var (
	hashType   string
	hashSalt   string
	hashLegacy bool
)

var hashCmd = &cobra.Command{
	Use:   "hash PASSWORD",
	Short: "Generate a stored password value",
	Long: `Generate the stored form of a password for provisioning user rows.

The salt applies to the crypt and netepi schemes and is generated when
not given. With --legacy, netepi produces the old two-letter prefixed
MD5 form instead (the salt flag then supplies the prefix).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password := args[0]

		ht, err := config.ParseHashType(hashType)
		if err != nil {
			return err
		}

		var stored string
		switch ht {
		case config.HashMD5:
			stored = hashes.MD5Hash(password)
		case config.HashBase64:
			stored = hashes.Base64Hash(password)
		case config.HashCrypt:
			salt := hashSalt
			if salt == "" {
				if salt, err = hashes.GenerateSalt(2); err != nil {
					return err
				}
			}
			if stored, err = hashes.CryptHash(password, salt); err != nil {
				return err
			}
		case config.HashNetEpi:
			if hashLegacy {
				prefix := hashSalt
				if prefix == "" {
					if prefix, err = hashes.GenerateSalt(2); err != nil {
						return err
					}
				}
				if len(prefix) != 2 {
					return fmt.Errorf("legacy prefix must be exactly two letters")
				}
				stored = hashes.NetEpiLegacyHash(password, prefix)
				break
			}
			salt := hashSalt
			if salt == "" {
				if salt, err = hashes.GenerateSalt(8); err != nil {
					return err
				}
			}
			stored = hashes.NetEpiHash(password, salt)
		}

		fmt.Println(stored)
		return nil
	},
}

func init() {
	hashCmd.Flags().StringVarP(&hashType, "type", "t", config.HashNetEpi, "hash scheme (crypt|md5|base64|netepi)")
	hashCmd.Flags().StringVarP(&hashSalt, "salt", "s", "", "salt (crypt/netepi) or legacy prefix; random when empty")
	hashCmd.Flags().BoolVar(&hashLegacy, "legacy", false, "produce the legacy netepi form")
}
