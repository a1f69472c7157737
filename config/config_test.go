package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sprintertech/sprinter-minting/config"
	"github.com/stretchr/testify/suite"
)

const validConfig = `
logLevel: debug
healthPort: 9002
venue:
  quoteRetries: 2
signer:
  type: local
  key: "0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
intent:
  amount: "10000"
  asset: USDT
  side: MINT
chain:
  id: 1
  name: mainnet
  endpoint: https://eth.llamarpc.com
`

type GetConfigTestSuite struct {
	suite.Suite

	dir string
}

func TestRunGetConfigTestSuite(t *testing.T) {
	suite.Run(t, new(GetConfigTestSuite))
}

func (s *GetConfigTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *GetConfigTestSuite) writeConfig(content string) string {
	path := filepath.Join(s.dir, "config.yaml")
	err := os.WriteFile(path, []byte(content), 0600)
	s.Nil(err)
	return path
}

func (s *GetConfigTestSuite) Test_GetConfigFromFile_MissingFile() {
	_, err := config.GetConfigFromFile(filepath.Join(s.dir, "missing.yaml"), nil)

	s.NotNil(err)
}

func (s *GetConfigTestSuite) Test_GetConfigFromFile_InvalidSigner() {
	path := s.writeConfig(`
signer:
  type: hsm
chain:
  id: 1
`)

	_, err := config.GetConfigFromFile(path, nil)

	s.NotNil(err)
}

func (s *GetConfigTestSuite) Test_GetConfigFromFile_MissingChain() {
	path := s.writeConfig(`
signer:
  type: remote
  url: http://localhost:8545
`)

	_, err := config.GetConfigFromFile(path, nil)

	s.NotNil(err)
}

func (s *GetConfigTestSuite) Test_GetConfigFromFile_ValidConfigWithDefaults() {
	path := s.writeConfig(validConfig)

	c, err := config.GetConfigFromFile(path, nil)

	s.Nil(err)
	s.Equal(zerolog.DebugLevel, c.LogLevel)
	s.Equal(uint16(9002), c.HealthPort)
	s.Equal(":3000", c.ApiAddr)
	s.Equal("https://public.api.ethena.fi/", c.Venue.URL)
	s.Equal("ALGO", c.Venue.QuoteType)
	s.Equal(2, c.Venue.QuoteRetries)
	s.Equal(10*time.Second, c.Venue.Timeout)
	s.Equal(5*time.Minute, c.Signer.Timeout)
	s.Equal(time.Minute, c.Order.Validity)
	s.Equal("monotonic", c.Order.NonceStrategy)
	s.Equal(time.Hour, c.StatusTTL)
	s.Equal("10000", c.Intent.Amount)
	s.Equal("USDT", c.Intent.Asset)
	s.Equal("https://eth.llamarpc.com", c.ChainConfig["endpoint"])
}

func (s *GetConfigTestSuite) Test_GetConfigFromFile_OverridesIntent() {
	path := s.writeConfig(validConfig)

	c, err := config.GetConfigFromFile(path, &config.Config{
		Intent: config.IntentConfig{
			Amount:           "5",
			InfiniteApproval: true,
		},
	})

	s.Nil(err)
	s.Equal("5", c.Intent.Amount)
	s.Equal("USDT", c.Intent.Asset)
	s.Equal("MINT", c.Intent.Side)
	s.True(c.Intent.InfiniteApproval)
}

func (s *GetConfigTestSuite) Test_GetConfigFromENV_ValidConfig() {
	s.T().Setenv("MINTER_SIGNER_TYPE", "remote")
	s.T().Setenv("MINTER_SIGNER_URL", "http://localhost:8545")
	s.T().Setenv("MINTER_VENUE_QUOTERETRIES", "1")
	s.T().Setenv("MINTER_CHAIN_ID", "1")
	s.T().Setenv("MINTER_CHAIN_ENDPOINT", "https://eth.llamarpc.com")
	s.T().Setenv("MINTER_INTENT_AMOUNT", "100")

	c, err := config.GetConfigFromENV("", nil)

	s.Nil(err)
	s.Equal(config.RemoteSigner, c.Signer.Type)
	s.Equal("http://localhost:8545", c.Signer.URL)
	s.Equal(1, c.Venue.QuoteRetries)
	s.Equal("100", c.Intent.Amount)
	s.Equal("https://eth.llamarpc.com", c.ChainConfig["endpoint"])
}

func (s *GetConfigTestSuite) Test_GetConfigFromENV_LoadsEnvFile() {
	envFile := filepath.Join(s.dir, ".env")
	err := os.WriteFile(envFile, []byte("MINTER_SIGNER_KEY=abcd\nMINTER_CHAIN_ID=1\n"), 0600)
	s.Nil(err)
	s.T().Setenv("MINTER_SIGNER_KEY", "")
	s.T().Setenv("MINTER_CHAIN_ID", "")
	_ = os.Unsetenv("MINTER_SIGNER_KEY")
	_ = os.Unsetenv("MINTER_CHAIN_ID")

	c, err := config.GetConfigFromENV(envFile, nil)

	s.Nil(err)
	s.Equal("abcd", c.Signer.Key)
}

func (s *GetConfigTestSuite) Test_GetConfigFromENV_MissingEnvFileIsIgnored() {
	s.T().Setenv("MINTER_SIGNER_KEY", "abcd")
	s.T().Setenv("MINTER_CHAIN_ID", "1")

	c, err := config.GetConfigFromENV(filepath.Join(s.dir, "missing.env"), nil)

	s.Nil(err)
	s.Equal("abcd", c.Signer.Key)
}
