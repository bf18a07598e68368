package cli

import (
	"clinicd/internal/providers"
	"clinicd/internal/records"
	"clinicd/internal/records/interfaces"
	"clinicd/internal/services"
)

// core is the minimal object graph for offline snapshot commands: no web
// server, no scheduler, no cache.
type core struct {
	logger      providers.Logger
	store       interfaces.RecordStoreInterface
	service     services.RecordServiceInterface
	snapshotter interfaces.SnapshotterInterface
}

func (c *core) close() {
	_ = c.store.Close()
	c.logger.Close()
}

func loadCore(opts *RootOptions) (*core, error) {
	conf, err := providers.NewConfigProvider(opts.cliFlags())
	if err != nil {
		return nil, err
	}
	logger, err := providers.NewLogProvider(conf)
	if err != nil {
		return nil, err
	}
	store, err := records.NewRecordStore(conf, logger)
	if err != nil {
		logger.Close()
		return nil, err
	}
	service := services.NewRecordService(store)
	if err := service.Reload(); err != nil {
		_ = store.Close()
		logger.Close()
		return nil, err
	}
	return &core{
		logger:      logger,
		store:       store,
		service:     service,
		snapshotter: records.NewSnapshotter(service, logger),
	}, nil
}
