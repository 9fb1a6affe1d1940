package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

// Genesis is the initial state of a ledger. AppState holds one section per
// extension, see the Initializer of each extension.
type Genesis struct {
	ChainID  string        `json:"chain_id"`
	AppState weave.Options `json:"app_state"`
}

// LoadGenesis reads and parses a genesis file.
func LoadGenesis(path string) (*Genesis, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "read genesis: %s", err)
	}
	return ParseGenesis(raw)
}

// ParseGenesis decodes a JSON genesis document.
func ParseGenesis(raw []byte) (*Genesis, error) {
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "decode genesis: %s", err)
	}
	if !weave.IsValidChainID(gen.ChainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %q", gen.ChainID)
	}
	return &gen, nil
}

// ChainInitializers returns an Initializer calling all given ones in order,
// aborting at the first error.
func ChainInitializers(inits ...weave.Initializer) weave.Initializer {
	return chainInitializer(inits)
}

type chainInitializer []weave.Initializer

func (c chainInitializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	for _, i := range c {
		if err := i.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}
