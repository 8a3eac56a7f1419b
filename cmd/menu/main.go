package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"daggys-menu/internal/cart"
	"daggys-menu/internal/catalog"
	"daggys-menu/internal/config"
	"daggys-menu/internal/dispatch"
	"daggys-menu/internal/favorites"
	"daggys-menu/internal/history"
	"daggys-menu/internal/kvstore"
	"daggys-menu/internal/order"
	"daggys-menu/internal/promo"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting daggys-menu")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Open the document store; Postgres falls back to the local file store
	// when the database is unreachable.
	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open document store: %w", err)
	}
	defer store.Close()

	// Initialize state stores and hydrate persisted state
	cartStore := cart.New(store, logger)
	favoritesStore := favorites.New(store, logger)
	historyStore := history.New(store, logger)

	if err := cartStore.Load(ctx); err != nil {
		return err
	}
	if err := favoritesStore.Load(ctx); err != nil {
		return err
	}
	if err := historyStore.Load(ctx); err != nil {
		return err
	}

	// Build the discount-code registry: S3, then local file, then defaults
	codes := loadPromoCodes(ctx, cfg.Promo, logger)

	// Outbound messaging
	opener := dispatch.NewExecOpener(logger)
	dispatcher := dispatch.NewIntentDispatcher(opener, cfg.Dispatch.MerchantEmail, cfg.Dispatch.SMSNumber, logger)

	var notifier dispatch.Notifier
	if cfg.Dispatch.TelegramToken != "" {
		notifier, err = dispatch.NewTelegramNotifier(cfg.Dispatch.TelegramToken, cfg.Dispatch.TelegramChatID, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("telegram notifier unavailable, continuing without secondary channel")
			notifier = nil
		}
	}

	// The submission flow is ready for the presentation layer to drive.
	_ = order.NewFlow(
		cartStore,
		historyStore,
		dispatcher,
		notifier,
		codes,
		cfg.Dispatch.MerchantEmail,
		cfg.Dispatch.MerchantPhone,
		logger,
	)

	cartTotal, err := cartStore.Total()
	if err != nil {
		return err
	}

	logger.Info().
		Int("menu_items", len(catalog.Items())).
		Int("cart_lines", cartStore.Len()).
		Int("cart_units", cartStore.ItemCount()).
		Str("cart_total", cartTotal).
		Int("favorites", favoritesStore.Len()).
		Int("orders", historyStore.Len()).
		Int("discount_codes", codes.Size()).
		Msg("state hydrated")

	return nil
}

// openStore opens the configured document store. A Postgres backend that
// cannot be reached degrades to the file store so local state keeps working.
func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (kvstore.Store, error) {
	if cfg.Storage.Backend == config.BackendPostgres {
		store, err := kvstore.NewPostgresStore(ctx, cfg.Storage.Postgres.ConnectionString(), nil, logger)
		if err == nil {
			return store, nil
		}
		logger.Warn().Err(err).Msg("postgres unavailable, falling back to file store")
	}

	return kvstore.NewFileStore(cfg.Storage.Dir, logger)
}

// loadPromoCodes builds the discount-code registry from the first source
// that works: S3 when enabled, then a local codes file, then the built-in
// defaults.
func loadPromoCodes(ctx context.Context, cfg config.PromoConfig, logger zerolog.Logger) *promo.Registry {
	if cfg.S3Enabled {
		loader, err := promo.NewS3Loader(ctx, cfg.S3Bucket, cfg.S3Region, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to initialise S3 promo loader, falling back")
		} else if codes, err := loader.Load(ctx, cfg.S3Key); err != nil {
			logger.Warn().Err(err).Msg("failed to load promo codes from S3, falling back")
		} else {
			return promo.NewRegistry(codes)
		}
	}

	if cfg.FilePath != "" {
		loader := promo.NewFileLoader(logger)
		codes, err := loader.Load(ctx, cfg.FilePath)
		if err != nil {
			logger.Warn().Err(err).Str("file", cfg.FilePath).Msg("failed to load promo codes file, using defaults")
		} else {
			return promo.NewRegistry(codes)
		}
	}

	logger.Info().Msg("using built-in discount codes")
	return promo.NewDefaultRegistry()
}
