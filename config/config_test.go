// Copyright (c) 2022 Gobalsky Labs Limited
//
// Use of this software is governed by the Business Source License included
// in the LICENSE.VEGA file and at https://www.mariadb.com/bsl11.
//
// Change Date: 18 months from the later of the date of the first publicly
// available Distribution of this version of the repository, and 25 June 2022.
//
// On the date above, in accordance with the Business Source License, use
// of this software will be governed by version 3 or later of the GNU General
// Public License.

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"code.vegaprotocol.io/marketplace/config"
	"code.vegaprotocol.io/marketplace/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := config.NewDefaultConfig()
	cfg.Environment = "prod"
	cfg.Marketplace.FeePercentage = 5
	cfg.API.Port = 2080
	require.NoError(t, config.Write(path, cfg))

	loaded, err := config.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "prod", loaded.Environment)
	assert.Equal(t, uint64(5), loaded.Marketplace.FeePercentage)
	assert.Equal(t, 2080, loaded.API.Port)
	assert.Equal(t, cfg.Marketplace.EscrowParty, loaded.Marketplace.EscrowParty)
}

func TestConfigReadMissingFile(t *testing.T) {
	_, err := config.Read(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestLogLevelFromToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	raw := `
Environment = "dev"

[Marketplace]
Level = "Debug"
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	loaded, err := config.Read(path)
	require.NoError(t, err)
	assert.Equal(t, logging.DebugLevel, loaded.Marketplace.Level.Get())
}
