// Package config defines the immutable per-directory configuration the
// gate is constructed from. A Directory is created once at load time and
// only read afterwards; request handling never mutates it.
package config

import (
	"fmt"
	"strings"

	"github.com/tanzilli/pgauth/pkg/hashes"
)

// Hash types accepted by the gate.
const (
	HashCrypt  = "crypt"
	HashMD5    = "md5"
	HashBase64 = "base64"
	HashNetEpi = "netepi"
)

// Username case normalization modes.
const (
	CaseNone  = ""
	CaseLower = "lower"
	CaseUpper = "upper"
)

// Connection holds the parameters for one database round trip. The
// executor opens a fresh connection from these on every statement.
type Connection struct {
	Host     string `json:"host,omitempty"`
	Port     string `json:"port,omitempty"`
	Database string `json:"database"`
	Options  string `json:"options,omitempty"`
	User     string `json:"user,omitempty"`
	Password string `json:"password,omitempty"`
}

// Directory is the full configuration for one protected directory.
type Directory struct {
	Connection Connection `json:"connection"`

	// Password lookup.
	PasswordTable string `json:"password_table,omitempty"`
	UsernameField string `json:"username_field,omitempty"`
	PasswordField string `json:"password_field,omitempty"`
	PasswordWhere string `json:"password_where,omitempty"` // extra WHERE fragment, appended verbatim

	// Group lookup.
	GroupTable     string `json:"group_table,omitempty"`
	GroupField     string `json:"group_field,omitempty"`
	GroupUserField string `json:"group_user_field,omitempty"`
	GroupWhere     string `json:"group_where,omitempty"`

	// Access logging. Username and date fields are required for logging
	// to happen at all; the rest are appended only when configured.
	LogTable         string `json:"log_table,omitempty"`
	LogUsernameField string `json:"log_username_field,omitempty"`
	LogDateField     string `json:"log_date_field,omitempty"`
	LogAddressField  string `json:"log_address_field,omitempty"`
	LogPasswordField string `json:"log_password_field,omitempty"`
	LogURIField      string `json:"log_uri_field,omitempty"`

	// Behavior flags. Authoritative and Encrypted default to true.
	Authoritative      bool   `json:"authoritative"`
	Encrypted          bool   `json:"encrypted"`
	AllowEmptyPassword bool   `json:"allow_empty_password,omitempty"`
	CachePasswords     bool   `json:"cache_passwords,omitempty"`
	IgnoreCase         bool   `json:"password_ignore_case,omitempty"`
	LegacyPasswords    bool   `json:"legacy_passwords,omitempty"`
	UsernameCase       string `json:"username_case,omitempty"` // "", "lower" or "upper"
	HashType           string `json:"hash_type,omitempty"`
}

// Defaults returns a Directory with the historical defaults: the gate is
// authoritative, passwords are stored encrypted, and the scheme is
// crypt(3).
func Defaults() *Directory {
	return &Directory{
		Authoritative: true,
		Encrypted:     true,
		HashType:      HashCrypt,
	}
}

// ParseHashType maps a directive spelling (any case) to a canonical hash
// type.
func ParseHashType(s string) (string, error) {
	switch strings.ToLower(s) {
	case HashCrypt:
		return HashCrypt, nil
	case HashMD5:
		return HashMD5, nil
	case HashBase64:
		return HashBase64, nil
	case HashNetEpi:
		return HashNetEpi, nil
	}
	return "", fmt.Errorf("invalid hash type %q", s)
}

// Validate normalizes and checks the enumerated fields.
func (d *Directory) Validate() error {
	ht, err := ParseHashType(d.HashType)
	if err != nil {
		return err
	}
	d.HashType = ht

	switch d.UsernameCase {
	case CaseNone, CaseLower, CaseUpper:
	default:
		return fmt.Errorf("invalid username case mode %q", d.UsernameCase)
	}
	return nil
}

// NormalizeUsername applies the directory's case policy.
func (d *Directory) NormalizeUsername(username string) string {
	switch d.UsernameCase {
	case CaseLower:
		return strings.ToLower(username)
	case CaseUpper:
		return strings.ToUpper(username)
	}
	return username
}

// Verifier selects the hash scheme for this directory. Called once at
// engine construction; the scheme is then held as a value.
func (d *Directory) Verifier() hashes.Verifier {
	if d.HashType == HashNetEpi {
		// NetEpi ignores the encrypted flag; the scheme owns the whole
		// comparison including the legacy fallback.
		return hashes.NetEpi{Legacy: d.LegacyPasswords}
	}
	if !d.Encrypted {
		// Cleartext storage: compare raw, but keep the per-scheme case
		// rule (MD5 and base64 directories compare case-insensitively).
		return hashes.Plain{
			IgnoreCase: d.IgnoreCase || d.HashType == HashMD5 || d.HashType == HashBase64,
		}
	}
	switch d.HashType {
	case HashMD5:
		return hashes.MD5{}
	case HashBase64:
		return hashes.Base64{}
	}
	return hashes.Crypt{IgnoreCase: d.IgnoreCase}
}
