package commands

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/stoich/internal/cli/config"
	"github.com/leapstack-labs/stoich/pkg/formula"
)

// errInvalidFormula is the message shown for any rejected formula.
var errInvalidFormula = errors.New("invalid formula entered, please enter a valid formula")

// userError maps a rejected formula onto the generic message. The parser's
// diagnostic is appended when verbose output is on.
func userError(cfg *config.Config, err error) error {
	if !errors.Is(err, formula.ErrInvalidFormula) {
		return err
	}
	if cfg != nil && cfg.Verbose {
		return fmt.Errorf("%w (%v)", errInvalidFormula, err)
	}
	return errInvalidFormula
}
