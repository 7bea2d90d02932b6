package runtime

import (
	"context"
	"errors"
	"time"

	cfgpkg "github.com/NEARFoundation/events-platform/internal/config"
	"github.com/NEARFoundation/events-platform/internal/mutation"
	"github.com/NEARFoundation/events-platform/internal/notify"
	"github.com/NEARFoundation/events-platform/internal/payment"
	pebblestore "github.com/NEARFoundation/events-platform/internal/storage/pebble"
	"github.com/NEARFoundation/events-platform/internal/store"
	"github.com/NEARFoundation/events-platform/pkg/id"
	logpkg "github.com/NEARFoundation/events-platform/pkg/log"
)

// Options for building the Runtime.
type Options struct {
	DataDir       string
	Fsync         pebblestore.FsyncMode
	FsyncInterval time.Duration
	Config        cfgpkg.Config
	Logger        logpkg.Logger
}

// Runtime wires storage, accounting, settlement and collaborators for a
// single-node instance.
type Runtime struct {
	db         *pebblestore.DB
	store      *store.Store
	engine     *mutation.Engine
	payer      payment.Payer
	dispatcher *mutation.Dispatcher
	notifier   notify.Notifier
	ids        id.Generator
	config     cfgpkg.Config
	logger     logpkg.Logger
}

// Open initializes the underlying storage and returns a Runtime.
func Open(opts Options) (*Runtime, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewLogger()
	}

	db, err := pebblestore.Open(pebblestore.Options{
		DataDir:       opts.DataDir,
		Fsync:         opts.Fsync,
		FsyncInterval: opts.FsyncInterval,
	})
	if err != nil {
		return nil, err
	}
	st, err := store.Open(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	ids := id.NewGenerator()
	payer := payment.NewJournal(db, ids)

	var notifier notify.Notifier = notify.Nop{}
	if opts.Config.AMQPURL != "" {
		notifier, err = notify.DialAMQP(opts.Config.AMQPURL)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info("change notifications enabled", logpkg.Str("exchange", notify.ExchangeName))
	}

	return &Runtime{
		db:         db,
		store:      st,
		engine:     mutation.NewEngine(st.Footprint, opts.Config.PricePerByte),
		payer:      payer,
		dispatcher: mutation.NewDispatcher(payer, logger.With(logpkg.Component("settle"))),
		notifier:   notifier,
		ids:        ids,
		config:     opts.Config,
		logger:     logger,
	}, nil
}

// Close closes underlying resources.
func (r *Runtime) Close() error {
	if r.notifier != nil {
		_ = r.notifier.Close()
	}
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// CheckHealth performs a simple storage health check.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.db == nil {
		return errors.New("db not open")
	}
	it, err := r.db.NewIter(nil)
	if err != nil {
		return err
	}
	return it.Close()
}

// Store returns the entity store.
func (r *Runtime) Store() *store.Store { return r.store }

// Engine returns the mutation engine.
func (r *Runtime) Engine() *mutation.Engine { return r.engine }

// Dispatcher returns the settlement dispatcher.
func (r *Runtime) Dispatcher() *mutation.Dispatcher { return r.dispatcher }

// Payer returns the payment collaborator.
func (r *Runtime) Payer() payment.Payer { return r.payer }

// Notifier returns the change notifier.
func (r *Runtime) Notifier() notify.Notifier { return r.notifier }

// IDs returns the entity id generator.
func (r *Runtime) IDs() id.Generator { return r.ids }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }

// Logger returns the process logger.
func (r *Runtime) Logger() logpkg.Logger { return r.logger }

// DB exposes the underlying DB for advanced operations (internal use only).
func (r *Runtime) DB() *pebblestore.DB { return r.db }
