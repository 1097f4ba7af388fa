package main

import (
	"context"
	"errors"
	"eventGate/internal/booking"
	"eventGate/internal/catalog"
	"eventGate/internal/checkin"
	"eventGate/internal/checkin/window"
	"eventGate/internal/config"
	"eventGate/internal/http-server/handlers/event/createEvent"
	"eventGate/internal/http-server/handlers/event/getAllEvents"
	"eventGate/internal/http-server/handlers/event/getEventInfo"
	"eventGate/internal/http-server/handlers/event/getMetrics"
	"eventGate/internal/http-server/handlers/event/getSeatMap"
	"eventGate/internal/http-server/handlers/event/releaseTickets"
	gateCheckin "eventGate/internal/http-server/handlers/gate/checkin"
	"eventGate/internal/http-server/handlers/gate/createGate"
	"eventGate/internal/http-server/handlers/gate/recentCheckins"
	"eventGate/internal/http-server/handlers/gate/updateGate"
	"eventGate/internal/http-server/handlers/hold/commitHold"
	"eventGate/internal/http-server/handlers/hold/createHold"
	"eventGate/internal/http-server/handlers/hold/getHold"
	"eventGate/internal/http-server/handlers/hold/releaseHold"
	"eventGate/internal/http-server/handlers/ticket/getUserTickets"
	"eventGate/internal/http-server/handlers/ticket/voidTicket"
	"eventGate/internal/http-server/middleware/mwlogger"
	"eventGate/internal/ledger"
	"eventGate/internal/lib/api/response"
	"eventGate/internal/lib/clock"
	"eventGate/internal/lib/logger/handlers/slogpretty"
	"eventGate/internal/lib/logger/sl"
	"eventGate/internal/metrics"
	"eventGate/internal/notify"
	"eventGate/internal/payment"
	"eventGate/internal/pricing"
	"eventGate/internal/storage/journal"
	"eventGate/internal/storage/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const shutdownTimeout = 10 * time.Second

// recorder is satisfied by both the postgres journal and journal.Discard.
type recorder interface {
	booking.Recorder
	checkin.Recorder
}

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting event gate", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	clk := clock.NewSystem()

	inventory := ledger.New(ledger.WithNow(clk.Now))
	prices := pricing.NewService(pricing.NewEngine(pricing.PolicyFromConfig(cfg.Pricing)), inventory, clk.Now)

	var (
		rec     recorder = journal.Discard{}
		storage *postgres.Storage
		jrnl    *journal.Journal
		snap    postgres.Snapshot
		err     error
	)

	if cfg.Database.Enabled() {
		storage, err = postgres.InitDB(&cfg.Database)
		if err != nil {
			log.Error("failed to init storage", sl.Err(err))
			os.Exit(1)
		}

		snap, err = storage.LoadSnapshot(context.Background(), clk.Now().Add(-booking.DefaultRetention))
		if err != nil {
			log.Error("failed to load snapshot", sl.Err(err))
			os.Exit(1)
		}

		jrnl = journal.New(storage, log, m)
		rec = jrnl
	} else {
		log.Warn("database is not configured, state is kept in memory only")
	}

	var rates checkin.RateWindow = window.NewMemory(cfg.Checkin.RateWindow)

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err = rdb.Ping(context.Background()).Err(); err != nil {
			log.Error("failed to connect to redis", sl.Err(err))
			os.Exit(1)
		}
		rates = window.NewRedis(rdb, cfg.Checkin.RateWindow)
	}

	var publisher notify.Publisher = notify.Discard{}

	var broker *notify.AMQP
	if cfg.AMQP.URL != "" {
		broker, err = notify.DialAMQP(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			log.Error("failed to connect to amqp", sl.Err(err))
			os.Exit(1)
		}
		publisher = broker
	}

	validator := checkin.New(checkin.Deps{
		Inventory: inventory,
		Window:    rates,
		Recorder:  rec,
		Publisher: publisher,
		Clock:     clk,
		Log:       log,
		Metrics:   m,
	}, checkin.WithRateWindow(cfg.Checkin.RateWindow), checkin.WithRecentHistory(cfg.Checkin.RecentHistory))

	coord := booking.New(booking.Deps{
		Ledger:    inventory,
		Pricer:    prices,
		Payments:  payment.NewSimulated(),
		Issuer:    validator,
		Recorder:  rec,
		Publisher: publisher,
		Clock:     clk,
		Log:       log,
		Metrics:   m,
	}, booking.WithHoldTTL(cfg.Booking.HoldTTL))

	events := catalog.New(inventory, prices, rec, log)

	if storage != nil {
		if err = restore(snap, inventory, coord, validator); err != nil {
			log.Error("failed to restore state", sl.Err(err))
			os.Exit(1)
		}

		log.Info("state restored",
			slog.Int("events", len(snap.Events)),
			slog.Int("reservations", len(snap.Reservations)),
			slog.Int("tickets", len(snap.Tickets)),
			slog.Int("gates", len(snap.Gates)),
		)
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, response.OK())
	})
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	router.Post("/events", createEvent.New(log, events))
	router.Get("/events", getAllEvents.New(log, events))
	router.Get("/events/{id}", getEventInfo.New(log, events))
	router.Get("/events/{id}/seats", getSeatMap.New(log, events))
	router.Post("/events/{id}/ticket-types/{type}/release", releaseTickets.New(log, events))
	router.Get("/events/{id}/metrics", getMetrics.New(log, validator))

	router.Post("/events/{id}/holds", createHold.New(log, coord))
	router.Get("/holds/{id}", getHold.New(log, coord))
	router.Post("/holds/{id}/commit", commitHold.New(log, coord))
	router.Delete("/holds/{id}", releaseHold.New(log, coord))

	router.Post("/events/{id}/gates", createGate.New(log, validator))
	router.Patch("/gates/{id}", updateGate.New(log, validator))
	router.Post("/gates/{id}/checkins", gateCheckin.New(log, validator))
	router.Get("/events/{id}/checkins", recentCheckins.New(log, validator))

	router.Get("/users/{id}/tickets", getUserTickets.New(log, validator))
	router.Post("/tickets/{id}/void", voidTicket.New(log, validator))

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	sweepDone := make(chan struct{})

	go func() {
		defer close(sweepDone)

		ticker := time.NewTicker(cfg.Booking.SweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				n, err := coord.ExpireSweep(sweepCtx)
				if err != nil {
					log.Error("failed to expire holds", sl.Err(err))
				}
				if n > 0 {
					log.Info("expired holds released", slog.Int("count", n))
				}
			case <-sweepCtx.Done():
				return
			}
		}
	}()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	stopSweep()
	<-sweepDone

	log.Info("application stopped")

	if jrnl != nil {
		if err = jrnl.Close(ctx); err != nil {
			log.Error("failed to drain journal", sl.Err(err))
		}
	}

	if storage != nil {
		if err = storage.Close(); err != nil {
			log.Error("failed to close postgres connection", sl.Err(err))
		}
		log.Info("postgres connection closed")
	}

	if rdb != nil {
		if err = rdb.Close(); err != nil {
			log.Error("failed to close redis connection", sl.Err(err))
		}
	}

	if broker != nil {
		if err = broker.Close(); err != nil {
			log.Error("failed to close amqp connection", sl.Err(err))
		}
	}
}

// restore rebuilds the in-memory core from a snapshot: ledger books first,
// then holds on top of them, then gates and issued tickets.
func restore(snap postgres.Snapshot, inventory *ledger.Ledger, coord *booking.Coordinator, validator *checkin.Validator) error {
	for _, ev := range snap.Events {
		pending, tickets := snap.ReservationsFor(ev.ID)
		if err := inventory.Restore(ev, pending, tickets); err != nil {
			return err
		}
	}

	coord.Restore(snap.Reservations)
	validator.Restore(snap.Gates, snap.Tickets)

	return nil
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
