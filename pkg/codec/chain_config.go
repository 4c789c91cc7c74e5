package codec

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const chainsFileName = "chains.yaml"

// ChainTable is a configured scheme table. It overrides the built-in table
// for deployments tracking forks, devnets, or chains whose feature
// activations diverge from the defaults.
type ChainTable struct {
	params map[ChainID]ChainParams
}

// chainsConfig is the root YAML structure of chains.yaml.
type chainsConfig struct {
	Chains []chainConfig `yaml:"chains"`
}

// chainConfig describes one chain entry.
type chainConfig struct {
	// ID is the chain identifier. Must be one of the supported enumeration.
	ID string `yaml:"id"`
	// Scheme is the encoding strategy ("legacy" or "proto"). Defaults to
	// proto when unset.
	Scheme string `yaml:"scheme"`
	// Features lists active protocol feature keys.
	Features []string `yaml:"features"`
	// Disabled entries are skipped during validation and lookup.
	Disabled bool `yaml:"disabled"`
}

// LoadChainTable loads and validates the scheme table from
// <configDirPath>/chains.yaml. Chains absent from the file keep their
// built-in parameters.
func LoadChainTable(configDirPath string) (*ChainTable, error) {
	chainsPath := filepath.Join(configDirPath, chainsFileName)
	f, err := os.Open(chainsPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg chainsConfig
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}

	table, err := cfg.verifyVariables()
	if err != nil {
		return nil, err
	}
	return table, nil
}

// verifyVariables validates the configuration and applies defaults:
// chain ids must belong to the supported enumeration, schemes must name a
// known strategy and default to proto when unset.
func (cfg *chainsConfig) verifyVariables() (*ChainTable, error) {
	params := make(map[ChainID]ChainParams, len(defaultChainParams))
	for id, p := range defaultChainParams {
		params[id] = p
	}

	for i, chain := range cfg.Chains {
		if chain.Disabled {
			continue
		}

		id, err := ParseChainID(chain.ID)
		if err != nil {
			return nil, fmt.Errorf("chain[%d]: %w", i, err)
		}

		scheme := Scheme(chain.Scheme)
		if chain.Scheme == "" {
			scheme = SchemeProto
		}
		switch scheme {
		case SchemeLegacy, SchemeProto:
		default:
			return nil, fmt.Errorf("chain[%d]: unknown scheme %q for chain %q", i, chain.Scheme, chain.ID)
		}

		params[id] = ChainParams{Scheme: scheme, Features: chain.Features}
	}

	return &ChainTable{params: params}, nil
}

// Params returns the ChainParams for the given chain.
func (t *ChainTable) Params(chainID ChainID) (ChainParams, error) {
	params, ok := t.params[chainID]
	if !ok {
		return ChainParams{}, fmt.Errorf("%w: %q", ErrInvalidChainID, chainID)
	}
	return params, nil
}

// NewEncoder selects the encoding strategy for the given chain from this
// table.
func (t *ChainTable) NewEncoder(chainID ChainID, doc SignDoc) (Encoder, error) {
	params, err := t.Params(chainID)
	if err != nil {
		return nil, err
	}
	return NewEncoderWithParams(params, doc)
}
