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

package main

import (
	"fmt"
	"os"

	"code.vegaprotocol.io/marketplace/config"

	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	var (
		configPath string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate the marketplace configuration",
		RunE: func(_ *cobra.Command, _ []string) error {
			if _, err := os.Stat(configPath); err == nil && !force {
				return fmt.Errorf("configuration already exists at %s, use --force to overwrite", configPath)
			}
			if err := config.Write(configPath, config.NewDefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("configuration generated at %s\n", configPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "marketplace.toml", "Path the configuration will be written to")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Erase an existing configuration at the specified path")
	return cmd
}
