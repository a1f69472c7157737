package allowance

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/sprintertech/sprinter-minting/app"
)

var AllowanceCLI = &cobra.Command{
	Use:   "allowance",
	Short: "Manage collateral allowances of the minting contract",
}

var (
	setAllowanceCMD = &cobra.Command{
		Use:   "set",
		Short: "Approve the maximum allowance of an asset",
		Long: "CLI approves the minting contract to transfer an unlimited amount of the asset " +
			"on behalf of the configured signer, resetting a non zero allowance first when the token requires it",
		RunE: setAllowance,
	}
)

var (
	asset string
)

func init() {
	setAllowanceCMD.PersistentFlags().StringVar(&asset, "asset", "", "asset symbol (USDC, USDT or USDe)")
	_ = setAllowanceCMD.MarkFlagRequired("asset")

	AllowanceCLI.AddCommand(setAllowanceCMD)
}

func setAllowance(cmd *cobra.Command, args []string) error {
	return app.SetAllowance(strings.TrimSpace(asset))
}
