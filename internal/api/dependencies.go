package api

import (
	"os"

	"benishangul-police/idregistry/internal/auth"
	"benishangul-police/idregistry/internal/common"
	"benishangul-police/idregistry/internal/db"
	"benishangul-police/idregistry/internal/db/repositories"
	"benishangul-police/idregistry/internal/logging"
	"benishangul-police/idregistry/internal/metrics"
	"benishangul-police/idregistry/internal/services"
)

type Repositories struct {
	Members  *repositories.MemberRepository
	Scans    *repositories.ScanRepository
	Assets   *repositories.AssetRepository
	Accounts *repositories.AccountRepository
}

type Services struct {
	Cache        common.CacheInterface
	Tokens       *auth.TokenService
	Issuance     *services.IssuanceService
	Verification *services.VerificationService
	Accounts     *services.AccountService
	Assets       *services.AssetService
	Backup       *services.BackupService
}

type Dependencies struct {
	Store    *db.Store
	Metrics  *metrics.MetricsRegistry
	Repo     *Repositories
	Services *Services
}

// InitDependencies wires repositories and services over the opened store.
func InitDependencies(store *db.Store, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {
	repos := &Repositories{
		Members:  repositories.NewMemberRepository(store),
		Scans:    repositories.NewScanRepository(store),
		Assets:   repositories.NewAssetRepository(store),
		Accounts: repositories.NewAccountRepository(store),
	}

	var cacheSvc common.CacheInterface
	if os.Getenv("CACHE_BACKEND") == "redis" {
		redisCache, err := common.NewRedisCacheService()
		if err != nil {
			logging.Warn("redis unavailable, falling back to in-memory cache", "error", err.Error())
			cacheSvc = common.NewCacheService(300, 600)
		} else {
			cacheSvc = redisCache
		}
	} else {
		cacheSvc = common.NewCacheService(300, 600)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "police-id-secret-key-2026"
		logging.Warn("JWT_SECRET not set, using built-in development secret")
	}
	tokenSvc := auth.NewTokenService([]byte(secret))

	var translator common.Translator
	if t := common.NewHTTPTranslator(); t != nil {
		translator = t
	} else {
		translator = common.NoopTranslator{}
	}

	svcs := &Services{
		Cache:        cacheSvc,
		Tokens:       tokenSvc,
		Issuance:     services.NewIssuanceService(store, translator),
		Verification: services.NewVerificationService(store, repos.Members, repos.Scans, metricsReg),
		Accounts:     services.NewAccountService(repos.Accounts, tokenSvc, metricsReg),
		Assets:       services.NewAssetService(repos.Assets, cacheSvc),
		Backup:       services.NewBackupService(store),
	}

	return &Dependencies{
		Store:    store,
		Metrics:  metricsReg,
		Repo:     repos,
		Services: svcs,
	}, nil
}

// Close releases the long-lived pieces owned by the dependency container.
func (d *Dependencies) Close() {
	d.Services.Verification.Close()
	if err := d.Services.Cache.Close(); err != nil {
		logging.Warn("failed to close cache", "error", err.Error())
	}
}
