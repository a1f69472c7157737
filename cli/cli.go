// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sprintertech/sprinter-minting/app"
	"github.com/sprintertech/sprinter-minting/cli/allowance"
	"github.com/sprintertech/sprinter-minting/config"
)

var (
	rootCMD = &cobra.Command{
		Use: "",
	}
	runCMD = &cobra.Command{
		Use:   "run",
		Short: "Execute a single mint or redeem order",
		Long:  "Quotes, builds, signs, verifies and submits one order for the configured intent",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run()
		},
	}
	serveCMD = &cobra.Command{
		Use:   "serve",
		Short: "Start the order API",
		Long:  "Accepts intents over HTTP and executes their lifecycles in the background",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Serve()
		},
	}
	versionCMD = &cobra.Command{
		Use:   "version",
		Short: "Print the minter version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("v%s\n", app.Version)
		},
	}
)

func init() {
	config.BindFlags(rootCMD)
	config.BindIntentFlags(runCMD)
}

func Execute() {
	rootCMD.AddCommand(runCMD, serveCMD, versionCMD, allowance.AllowanceCLI)
	if err := rootCMD.Execute(); err != nil {
		log.Fatal().Err(err).Msg("failed to execute root cmd")
	}
}
