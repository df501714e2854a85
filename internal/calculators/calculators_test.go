package calculators

import (
	"skybrief/internal/config"
)

// testCalculators builds a calculator set against test server URLs with
// a short timeout.
func testCalculators(configure func(cfg *config.Config)) *Calculators {
	cfg := &config.Config{
		FetchTimeoutSeconds: 2,
	}
	if configure != nil {
		configure(cfg)
	}
	return New(cfg)
}
