package commands

import (
	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/store"
)

// loadService opens the configured store.
func loadService() (*app.Service, store.Config, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, nil, err
	}
	return &app.Service{
		Persistence: p,
		Blocks:      cfg.Blocks(),
		ArchiveDir:  cfg.ArchiveDir(),
	}, cfg, nil
}

// run loads the service, hands it to fn and closes the store afterwards.
func run(fn func(svc *app.Service, cfg store.Config) error) error {
	svc, cfg, err := loadService()
	if err != nil {
		return oo.HandleError(err)
	}
	err = fn(svc, cfg)
	if cerr := svc.Persistence.Close(); err == nil {
		err = cerr
	}
	return oo.HandleError(err)
}
