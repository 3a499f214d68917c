package ledger

import (
	"github.com/holiman/uint256"
)

// DefaultDecimals is the denomination scale used when a configuration
// does not specify one.
const DefaultDecimals uint8 = 18

// Config describes a ledger at genesis. The entire supply is credited
// to InitialHolder; Name, Symbol and Decimals are descriptive metadata
// echoed verbatim by the read-only accessors.
type Config struct {
	InitialHolder Address      `json:"initialHolder"`
	TotalSupply   *uint256.Int `json:"totalSupply"`
	Name          string       `json:"name"`
	Symbol        string       `json:"symbol"`
	Decimals      uint8        `json:"decimals"`
}

// Validate checks the configuration for construction.
func (c Config) Validate() error {
	if c.InitialHolder.IsZero() {
		return ErrInvalidConfiguration
	}
	return nil
}
