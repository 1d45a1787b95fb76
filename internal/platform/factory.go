package platform

import (
	"os"

	"github.com/aretw0/stock/pkg/core"
)

// New initializes the repository at path and wraps it in a core.Service.
//
//	svc, err := stock.New("inventory.json", stock.WithLogger(logger))
func New(path string, opts ...Option) (*core.Service, error) {
	repo, err := Init(path, opts...)
	if err != nil {
		return nil, err
	}

	// We also need to parse options here to get the logger and output for wiring
	o := applyOptions(opts)
	out := o.output
	if out == nil {
		out = os.Stdout
	}

	return core.NewService(repo, o.logger, out), nil
}
