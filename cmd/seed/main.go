// seed inserts a completed development identity and prints a Permanent token for it.
// Idempotent: reuses the identity when the dev phone number is already registered.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Rollin-123/belafrica-node-sub000/internal/config"
	"github.com/Rollin-123/belafrica-node-sub000/internal/db"
	"github.com/Rollin-123/belafrica-node-sub000/internal/platform/logging"
	"github.com/Rollin-123/belafrica-node-sub000/internal/security"
	"github.com/Rollin-123/belafrica-node-sub000/internal/user/domain"
	userrepo "github.com/Rollin-123/belafrica-node-sub000/internal/user/repository"
)

const devPhone = "+33600000001"

var devProfile = domain.Profile{
	Pseudo:          "devuser",
	CountryName:     "France",
	NationalityName: "Senegal",
	Community:       "SenegalEnFrance",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logging.Setup(cfg.LogLevel, "console")
	if cfg.IsProduction() {
		log.Fatal().Msg("seed must not run with APP_ENV=production")
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db")
	}
	defer conn.Close()

	signer, pub, err := security.LoadKeyPair(cfg.JWTPrivateKey, cfg.JWTPublicKey)
	if err != nil {
		log.Fatal().Err(err).Msg("jwt keys")
	}
	tokens := security.NewTokenProvider(signer, pub, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTTempTTL, cfg.JWTPermanentTTL)

	users := userrepo.NewPostgresRepository(conn)
	u, err := users.GetByPhone(ctx, devPhone)
	if err != nil {
		log.Fatal().Err(err).Msg("seed check")
	}
	if u != nil && u.ProfileComplete {
		log.Info().Str("user_id", u.ID).Msg("seed already applied, reusing dev identity")
	} else {
		u, err = users.CompleteProfile(ctx, uuid.NewString(), devPhone, devProfile, time.Now().UTC())
		if err != nil {
			log.Fatal().Err(err).Msg("create dev identity")
		}
		log.Info().Str("user_id", u.ID).Msg("dev identity created")
	}

	token, exp, err := tokens.IssuePermanent(u.ID, u.PhoneNumber)
	if err != nil {
		log.Fatal().Err(err).Msg("issue token")
	}
	fmt.Fprintf(os.Stdout, "Dev identity: %s (%s, %s)\n", u.ID, u.PhoneNumber, u.Pseudo)
	fmt.Fprintf(os.Stdout, "Permanent token (expires %s):\n%s\n", exp.Format(time.RFC3339), token)
}
