package node

import (
	"context"
	"errors"
	"fmt"
	"net"
	"reflect"
	"strconv"
	"sync"

	"github.com/NethermindEth/makimono/api"
	"github.com/NethermindEth/makimono/db"
	"github.com/NethermindEth/makimono/db/pebble"
	"github.com/NethermindEth/makimono/db/rocksdb"
	"github.com/NethermindEth/makimono/reader"
	"github.com/NethermindEth/makimono/service"
	"github.com/NethermindEth/makimono/utils"
	"github.com/NethermindEth/makimono/validator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sourcegraph/conc"
)

// Config is the top-level makimono configuration.
type Config struct {
	LogLevel utils.LogLevel `mapstructure:"log-level" validate:"oneof=debug info warn error fatal"`
	Colour   bool           `mapstructure:"colour"`

	DatabasePath    string     `mapstructure:"db-path" validate:"required"`
	DatabaseBackend db.Backend `mapstructure:"db-backend" validate:"db_backend"`
	DBCacheSizeMB   uint       `mapstructure:"db-cache-size"`
	DBMaxOpenFiles  int        `mapstructure:"db-max-open-files" validate:"min=0"`
	BlockCacheSize  int        `mapstructure:"block-cache-size" validate:"min=0"`

	HTTPHost    string   `mapstructure:"http-host"`
	HTTPPort    uint16   `mapstructure:"http-port"`
	CORSOrigins []string `mapstructure:"cors-origins" validate:"dive,eq=*|url"`

	Metrics     bool   `mapstructure:"metrics"`
	MetricsPort uint16 `mapstructure:"metrics-port"`
}

// Runner is what the command line needs from a node
type Runner interface {
	Run(ctx context.Context) error
}

type NewFn func(cfg *Config, version string) (Runner, error)

type Node struct {
	cfg      *Config
	store    db.Store
	services []service.Service
	log      utils.Logger

	version string
}

// New validates the config, opens the database and sets up the services. The
// listeners are bound here so that a busy port fails before Run.
func New(cfg *Config, version string) (*Node, error) { //nolint:funlen
	if err := validator.Validator().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log, err := utils.NewZapLogger(&cfg.LogLevel, cfg.Colour)
	if err != nil {
		return nil, err
	}
	dbLog, err := utils.NewZapLogger(utils.NewLogLevel(utils.ERROR), cfg.Colour)
	if err != nil {
		return nil, fmt.Errorf("create DB logger: %w", err)
	}

	store, err := OpenStore(cfg, dbLog)
	if err != nil {
		return nil, fmt.Errorf("open DB: %w", err)
	}

	n := &Node{
		cfg:     cfg,
		store:   store,
		log:     log,
		version: version,
	}
	if err = n.setup(); err != nil {
		return nil, errors.Join(err, n.close())
	}
	return n, nil
}

func (n *Node) setup() error {
	dbReader := reader.New(n.store, n.log).WithBlockCacheSize(n.cfg.BlockCacheSize)
	handler := api.New(dbReader, n.log)

	if n.cfg.Metrics {
		registry := prometheus.NewRegistry()
		makeMakimonoMetrics(registry, n.version)
		n.store.WithListener(makeDBMetrics(registry))
		dbReader.WithListener(makeReaderMetrics(registry))
		handler.WithListener(makeAPIMetrics(registry))

		listener, err := listen(n.cfg.HTTPHost, n.cfg.MetricsPort)
		if err != nil {
			return fmt.Errorf("listen for metrics: %w", err)
		}
		n.services = append(n.services, makeMetrics(listener, registry))
	}

	listener, err := listen(n.cfg.HTTPHost, n.cfg.HTTPPort)
	if err != nil {
		return fmt.Errorf("listen for API: %w", err)
	}
	n.services = append(n.services, makeAPI(listener, handler.HTTPHandler(n.cfg.CORSOrigins), &n.cfg.LogLevel))
	return nil
}

func listen(host string, port uint16) (net.Listener, error) {
	return net.Listen("tcp", net.JoinHostPort(host, strconv.FormatUint(uint64(port), 10)))
}

// OpenStore opens the database cfg points at with the configured backend
func OpenStore(cfg *Config, log utils.Logger) (db.Store, error) {
	path, err := db.ResolvePath(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	switch cfg.DatabaseBackend {
	case db.RocksDB:
		options := []rocksdb.Option{rocksdb.WithCacheSize(cfg.DBCacheSizeMB)}
		if cfg.DBMaxOpenFiles > 0 {
			options = append(options, rocksdb.WithMaxOpenFiles(cfg.DBMaxOpenFiles))
		}
		store, err := rocksdb.New(path, options...)
		if err != nil {
			return nil, err
		}
		return store, nil
	case db.Pebble:
		options := []pebble.Option{pebble.WithCacheSize(cfg.DBCacheSizeMB), pebble.WithLogger(log)}
		if cfg.DBMaxOpenFiles > 0 {
			options = append(options, pebble.WithMaxOpenFiles(cfg.DBMaxOpenFiles))
		}
		store, err := pebble.New(path, options...)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: %q", db.ErrUnknownBackend, cfg.DatabaseBackend)
	}
}

// close releases what New acquired when the node is not going to run
func (n *Node) close() error {
	errs := []error{n.store.Close()}
	for _, s := range n.services {
		if h, ok := s.(*httpService); ok {
			errs = append(errs, h.listener.Close())
		}
	}
	return errors.Join(errs...)
}

// Run runs every service until ctx is cancelled or one of them fails, then
// waits for all of them to return and closes the database. It returns the
// errors of the failed services.
func (n *Node) Run(ctx context.Context) error {
	defer func() {
		if closeErr := n.store.Close(); closeErr != nil {
			n.log.Errorw("Error while closing the DB", "err", closeErr)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu   sync.Mutex
		errs []error
	)
	wg := conc.NewWaitGroup()
	for _, s := range n.services {
		wg.Go(func() {
			if err := s.Run(ctx); err != nil {
				n.log.Errorw("Service error", "name", reflect.TypeOf(s), "err", err)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				cancel()
			}
		})
	}

	n.log.Infow("Serving database", "path", n.store.Path(), "backend", n.cfg.DatabaseBackend,
		"columns", len(n.store.ColumnFamilies()), "version", n.version)
	<-ctx.Done()
	n.log.Infow("Shutting down makimono...")
	wg.Wait()
	return errors.Join(errs...)
}

func (n *Node) Config() Config {
	return *n.cfg
}
