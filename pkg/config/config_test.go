package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanzilli/pgauth/pkg/hashes"
)

func TestDefaults(t *testing.T) {
	d := Defaults()
	assert.True(t, d.Authoritative)
	assert.True(t, d.Encrypted)
	assert.Equal(t, HashCrypt, d.HashType)
	assert.False(t, d.CachePasswords)
}

func TestParseHashType(t *testing.T) {
	for in, want := range map[string]string{
		"CRYPT":  HashCrypt,
		"md5":    HashMD5,
		"Base64": HashBase64,
		"NETEPI": HashNetEpi,
	} {
		got, err := ParseHashType(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseHashType("sha512")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/pgauth/dir.json", []byte(`{
		"connection": {"host": "db.local", "database": "auth"},
		"password_table": "users",
		"username_field": "uid",
		"password_field": "pw",
		"hash_type": "MD5",
		"username_case": "lower"
	}`), 0644))

	d, err := Load(fs, "/etc/pgauth/dir.json")
	require.NoError(t, err)

	assert.Equal(t, "db.local", d.Connection.Host)
	assert.Equal(t, "users", d.PasswordTable)
	assert.Equal(t, HashMD5, d.HashType, "hash type spelling is normalized")
	// Defaults survive keys the file does not mention.
	assert.True(t, d.Authoritative)
	assert.True(t, d.Encrypted)
}

func TestLoadExplicitFalseOverridesDefault(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/dir.json", []byte(`{
		"connection": {"database": "auth"},
		"authoritative": false,
		"encrypted": false
	}`), 0644))

	d, err := Load(fs, "/dir.json")
	require.NoError(t, err)
	assert.False(t, d.Authoritative)
	assert.False(t, d.Encrypted)
}

func TestLoadErrors(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := Load(fs, "/missing.json")
	assert.Error(t, err, "missing file")

	require.NoError(t, afero.WriteFile(fs, "/bad.json", []byte("{"), 0644))
	_, err = Load(fs, "/bad.json")
	assert.Error(t, err, "malformed JSON")

	require.NoError(t, afero.WriteFile(fs, "/badhash.json", []byte(`{"hash_type": "rot13"}`), 0644))
	_, err = Load(fs, "/badhash.json")
	assert.Error(t, err, "unknown hash type")

	require.NoError(t, afero.WriteFile(fs, "/badcase.json", []byte(`{"username_case": "title"}`), 0644))
	_, err = Load(fs, "/badcase.json")
	assert.Error(t, err, "unknown case mode")
}

func TestNormalizeUsername(t *testing.T) {
	d := Defaults()
	assert.Equal(t, "MiXeD", d.NormalizeUsername("MiXeD"))

	d.UsernameCase = CaseLower
	assert.Equal(t, "mixed", d.NormalizeUsername("MiXeD"))

	d.UsernameCase = CaseUpper
	assert.Equal(t, "MIXED", d.NormalizeUsername("MiXeD"))
}

func TestVerifierSelection(t *testing.T) {
	d := Defaults()
	assert.IsType(t, hashes.Crypt{}, d.Verifier())

	d.HashType = HashMD5
	assert.IsType(t, hashes.MD5{}, d.Verifier())

	d.HashType = HashBase64
	assert.IsType(t, hashes.Base64{}, d.Verifier())

	d.HashType = HashNetEpi
	d.LegacyPasswords = true
	v := d.Verifier()
	require.IsType(t, hashes.NetEpi{}, v)
	assert.True(t, v.(hashes.NetEpi).Legacy)

	// NetEpi owns the comparison even with encryption "off".
	d.Encrypted = false
	assert.IsType(t, hashes.NetEpi{}, d.Verifier())

	// Cleartext storage compares raw, case-insensitively for MD5/base64
	// directories.
	d.HashType = HashMD5
	v = d.Verifier()
	require.IsType(t, hashes.Plain{}, v)
	assert.True(t, v.(hashes.Plain).IgnoreCase)

	d.HashType = HashCrypt
	v = d.Verifier()
	require.IsType(t, hashes.Plain{}, v)
	assert.False(t, v.(hashes.Plain).IgnoreCase)

	d.IgnoreCase = true
	assert.True(t, d.Verifier().(hashes.Plain).IgnoreCase)
}
