package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/finanzas/internal/auth"
	"github.com/dmitrijs2005/finanzas/internal/authevents"
	"github.com/dmitrijs2005/finanzas/internal/config"
	"github.com/dmitrijs2005/finanzas/internal/filex"
	"github.com/dmitrijs2005/finanzas/internal/logging"
	"github.com/dmitrijs2005/finanzas/internal/models"
	"github.com/dmitrijs2005/finanzas/internal/repositories/repomanager"
	"github.com/dmitrijs2005/finanzas/internal/services"
	"github.com/dmitrijs2005/finanzas/internal/session"
)

// eventSource is an external auth event stream, such as *authevents.AMQPSource.
type eventSource interface {
	Consume(ctx context.Context, h authevents.Handler) error
	Publish(ctx context.Context, e authevents.Event) error
	Close() error
}

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	controller *session.Controller
	broker     *authevents.Broker
	events     eventSource
	reader     *bufio.Reader
	out        io.Writer
	loc        *time.Location
	clock      func() time.Time
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	level, _ := logging.ParseLevel(c.LogLevel)
	logger := logging.New(os.Stderr, level)

	loc, err := c.Location()
	if err != nil {
		return nil, err
	}

	if c.StorageBackend == repomanager.BackendSQLite && c.SQLitePath != ":memory:" {
		if _, err := filex.EnsureParentDir(c.SQLitePath); err != nil {
			return nil, err
		}
	}

	db, m, err := repomanager.Open(ctx, c.StorageBackend, c.DSN())
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	secret := []byte(c.JWTSecret)
	controller := session.NewController(
		services.NewProfileService(db, m, logger),
		services.NewLedgerService(db, m, logger),
		session.Options{
			LoadTimeout: c.LoadTimeout,
			Location:    loc,
			ParseToken: func(token string) (models.Identity, error) {
				return auth.ParseIdentity(token, secret)
			},
			Logger: logger,
		},
	)

	broker := authevents.NewBroker()
	broker.Subscribe(controller.HandleEvent)

	app := &App{
		config:     c,
		logger:     logger,
		db:         db,
		controller: controller,
		broker:     broker,
		reader:     bufio.NewReader(os.Stdin),
		out:        os.Stdout,
		loc:        loc,
	}

	if c.AMQPURL != "" {
		src, err := authevents.DialAMQP(c.AMQPURL, c.AMQPExchange, c.AMQPQueue, logger)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		app.events = src
	}

	return app, nil
}

func (a *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// consumeEvents forwards external auth events to the broker until ctx is
// done. If the stream fails, sign-outs can no longer be observed, so the
// current session is invalidated.
func (a *App) consumeEvents(ctx context.Context) {
	err := a.events.Consume(ctx, a.broker.Publish)
	if err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Error(ctx, "auth event consumer stopped", "error", err)
		a.controller.InvalidateSession(fmt.Errorf("auth event stream lost: %w", err))
	}
}

// publishAuth sends e through the external stream when one is configured,
// so the session changes when the event is delivered back. Otherwise e goes
// straight to the in-process broker.
func (a *App) publishAuth(ctx context.Context, e authevents.Event) (delivered bool, err error) {
	if a.events != nil {
		return false, a.events.Publish(ctx, e)
	}
	return true, a.broker.Publish(ctx, e)
}

// Run starts the shell and blocks until the user exits or a signal arrives.
func (a *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	a.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	if a.events != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.consumeEvents(ctx)
		}()
	}

	if a.config.DemoMode {
		a.controller.StartDemo()
	}

	fmt.Fprintln(a.out, "Finanzas CLI (type 'help' for commands)")

	done := make(chan struct{})
	go func() {
		defer close(done)
		runREPL(ctx, a, a.getStatus, a.reader)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}

	cancelFunc()
	wg.Wait()
	a.Close()
}

func (a *App) Close() {
	if a.events != nil {
		_ = a.events.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}
