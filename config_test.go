// Part of the tn3270 client library. Licensed under the MIT license. See
// LICENSE in the project root for license information.

package tn3270

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProfileAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: mainframe.example\nlu_name: LUPOOL1\n"), 0o644))

	p, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "mainframe.example", p.Host)
	assert.Equal(t, 23, p.Port)
	assert.Equal(t, "IBM-3278-2-E", p.TerminalType)
	assert.Equal(t, "LUPOOL1", p.LUName)
}

func TestLoadProfileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: h\nport: 992\ntls: true\nterminal_type: IBM-3279-2-E\n"), 0o644))

	p, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, 992, p.Port)
	assert.True(t, p.TLS)
	assert.Equal(t, "IBM-3279-2-E", p.TerminalType)
}

func TestLoadProfileMissingFile(t *testing.T) {
	_, err := LoadProfile("/nonexistent/profile.yaml")
	assert.Error(t, err)
}
