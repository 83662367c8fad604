// Worker removes OTP records that expired more than OTP_RETENTION ago, every OTP_SWEEP_INTERVAL.
// Requires DATABASE_URL; GRPC_ADDR is read by config but unused.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Rollin-123/belafrica-node-sub000/internal/config"
	"github.com/Rollin-123/belafrica-node-sub000/internal/db"
	"github.com/Rollin-123/belafrica-node-sub000/internal/otp"
	otprepo "github.com/Rollin-123/belafrica-node-sub000/internal/otp/repository"
	"github.com/Rollin-123/belafrica-node-sub000/internal/platform/logging"
)

const sweepTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info().Msg("worker: shutting down")
		cancel()
	}()

	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db")
	}
	defer conn.Close()

	issuer := otp.NewIssuer(otprepo.NewPostgresRepository(conn), nil)
	log.Info().Dur("interval", cfg.OTPSweepInterval).Dur("retention", cfg.OTPRetention).Msg("worker: sweeping expired OTP records")

	ticker := time.NewTicker(cfg.OTPSweepInterval)
	defer ticker.Stop()
	for {
		sweep(ctx, issuer, cfg.OTPRetention)
		select {
		case <-ctx.Done():
			log.Info().Msg("worker: stopped")
			return
		case <-ticker.C:
		}
	}
}

func sweep(ctx context.Context, issuer *otp.Issuer, retention time.Duration) {
	sweepCtx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()
	n, err := issuer.Sweep(sweepCtx, retention)
	if err != nil {
		if ctx.Err() == nil {
			log.Error().Err(err).Msg("worker: sweep failed")
		}
		return
	}
	if n > 0 {
		log.Info().Int64("deleted", n).Msg("worker: swept expired OTP records")
	}
}
