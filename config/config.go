package config

import (
	"errors"
	"fmt"
	"os"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v2"

	fractiongen "github.com/krazyTry/nft-fraction-go/gen/nft_fraction"
)

const (
	DefaultDataDir    = ".nft-fraction"
	DefaultLogLevel   = "info"
	DefaultCommitment = rpc.CommitmentFinalized
)

var ErrInvalidCommitment = errors.New("invalid commitment")

type Config struct {
	// Directory of the local account store.
	DataDir string `yaml:"data_dir"`
	// One of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// Human readable console logs instead of JSON.
	LogDevelopment bool `yaml:"log_development"`
	// JSON-RPC endpoint used by read commands.
	RPCEndpoint string `yaml:"rpc_endpoint"`
	Commitment  string `yaml:"commitment"`
	// Overrides the fraction program address when set.
	ProgramID string `yaml:"program_id,omitempty"`
}

func Default() *Config {
	return &Config{
		DataDir:     DefaultDataDir,
		LogLevel:    DefaultLogLevel,
		RPCEndpoint: rpc.DevNet_RPC,
		Commitment:  string(DefaultCommitment),
	}
}

// Load reads a YAML file on top of the defaults. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, c.Validate()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.UnmarshalStrict(raw, c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	switch rpc.CommitmentType(c.Commitment) {
	case rpc.CommitmentProcessed, rpc.CommitmentConfirmed, rpc.CommitmentFinalized:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidCommitment, c.Commitment)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.ProgramID != "" {
		if _, err := solanago.PublicKeyFromBase58(c.ProgramID); err != nil {
			return fmt.Errorf("program id %q: %w", c.ProgramID, err)
		}
	}
	if c.DataDir == "" {
		return errors.New("data dir is empty")
	}
	return nil
}

// Apply installs process wide settings. Call it before deriving addresses.
func (c *Config) Apply() error {
	if c.ProgramID == "" {
		return nil
	}
	programID, err := solanago.PublicKeyFromBase58(c.ProgramID)
	if err != nil {
		return err
	}
	fractiongen.SetProgramID(programID)
	return nil
}

func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if c.LogDevelopment {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func (c *Config) RPCClient() *rpc.Client {
	return rpc.New(c.RPCEndpoint)
}

func (c *Config) CommitmentType() rpc.CommitmentType {
	return rpc.CommitmentType(c.Commitment)
}
