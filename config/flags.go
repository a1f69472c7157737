package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	ConfigFlagName  = "config"
	EnvFileFlagName = "env-file"

	AmountFlagName           = "amount"
	AssetFlagName            = "asset"
	SideFlagName             = "side"
	BeneficiaryFlagName      = "beneficiary"
	InfiniteApprovalFlagName = "infinite-approval"
)

func BindFlags(rootCMD *cobra.Command) {
	rootCMD.PersistentFlags().String(ConfigFlagName, ".", "Path to config file or 'env' to read configuration from the environment")
	_ = viper.BindPFlag(ConfigFlagName, rootCMD.PersistentFlags().Lookup(ConfigFlagName))

	rootCMD.PersistentFlags().String(EnvFileFlagName, ".env", "Path to .env file loaded before reading the environment")
	_ = viper.BindPFlag(EnvFileFlagName, rootCMD.PersistentFlags().Lookup(EnvFileFlagName))
}

// BindIntentFlags registers flags that override the configured intent.
func BindIntentFlags(cmd *cobra.Command) {
	cmd.Flags().String(AmountFlagName, "", "Amount of the intent in whole tokens")
	_ = viper.BindPFlag(AmountFlagName, cmd.Flags().Lookup(AmountFlagName))

	cmd.Flags().String(AssetFlagName, "", "Collateral asset (USDC or USDT)")
	_ = viper.BindPFlag(AssetFlagName, cmd.Flags().Lookup(AssetFlagName))

	cmd.Flags().String(SideFlagName, "", "Side of the intent (MINT or REDEEM)")
	_ = viper.BindPFlag(SideFlagName, cmd.Flags().Lookup(SideFlagName))

	cmd.Flags().String(BeneficiaryFlagName, "", "Beneficiary address, defaults to the benefactor")
	_ = viper.BindPFlag(BeneficiaryFlagName, cmd.Flags().Lookup(BeneficiaryFlagName))

	cmd.Flags().Bool(InfiniteApprovalFlagName, false, "Approve the maximum allowance instead of the required amount")
	_ = viper.BindPFlag(InfiniteApprovalFlagName, cmd.Flags().Lookup(InfiniteApprovalFlagName))
}

// IntentFromFlags returns the intent overrides set on the command line.
func IntentFromFlags() IntentConfig {
	return IntentConfig{
		Amount:           viper.GetString(AmountFlagName),
		Asset:            viper.GetString(AssetFlagName),
		Side:             viper.GetString(SideFlagName),
		Beneficiary:      viper.GetString(BeneficiaryFlagName),
		InfiniteApproval: viper.GetBool(InfiniteApprovalFlagName),
	}
}
