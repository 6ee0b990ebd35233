package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/leapstack-labs/introspect/pkg/core"
)

// ConfigKeyDatabaseURL is the configuration key holding the connection URL.
const ConfigKeyDatabaseURL = "database_url"

// Scheme returns the lower-cased URL scheme of a connection URL.
func Scheme(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", &core.ConfigurationError{Key: ConfigKeyDatabaseURL, Reason: "not a valid URL", Err: stripURL(err)}
	}
	if u.Scheme == "" {
		return "", &core.ConfigurationError{Key: ConfigKeyDatabaseURL, Reason: "missing scheme (e.g. mysql://, postgres://, sqlite://)"}
	}
	return strings.ToLower(u.Scheme), nil
}

// Open resolves the adapter for cfg.URL, connects it and returns it ready
// for catalog queries. cfg.Type overrides the scheme-derived adapter when set.
//
// An empty or unparsable URL or an unknown scheme is reported as
// *core.ConfigurationError; any failure to reach the database as
// *core.ConnectionError.
func Open(ctx context.Context, cfg core.AdapterConfig, logger *slog.Logger) (Adapter, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if strings.TrimSpace(cfg.URL) == "" {
		return nil, &core.ConfigurationError{Key: ConfigKeyDatabaseURL, Reason: "is not set"}
	}

	scheme, err := Scheme(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.Type == "" {
		cfg.Type = scheme
	}

	adp, err := NewAdapter(cfg, logger)
	if err != nil {
		var unknown *UnknownAdapterError
		if errors.As(err, &unknown) {
			return nil, &core.ConfigurationError{
				Key:    ConfigKeyDatabaseURL,
				Reason: fmt.Sprintf("unsupported scheme %q", cfg.Type),
				Err:    err,
			}
		}
		return nil, err
	}

	logger.Debug("connecting to database",
		slog.String("adapter", cfg.Type),
		slog.String("url", RedactURL(cfg.URL)))

	if err := adp.Connect(ctx, cfg); err != nil {
		// Adapters validate their own URL shape during Connect.
		var cfgErr *core.ConfigurationError
		if errors.As(err, &cfgErr) {
			return nil, err
		}
		return nil, &core.ConnectionError{Scheme: cfg.Type, Err: err}
	}

	logger.Info("connected", slog.String("dialect", adp.DialectName()))
	return adp, nil
}

// FileURL extracts the file path and raw query of a file-backed database URL.
//
//	sqlite:///var/lib/app.db  -> /var/lib/app.db
//	sqlite://data/app.db      -> data/app.db
//	sqlite:app.db             -> app.db
//	duckdb://                 -> "" (caller picks in-memory)
func FileURL(rawURL string) (path, rawQuery string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", &core.ConfigurationError{Key: ConfigKeyDatabaseURL, Reason: "not a valid URL", Err: stripURL(err)}
	}
	path = u.Opaque
	if path == "" {
		path = u.Host + u.Path
	}
	return path, u.RawQuery, nil
}

// RedactURL returns rawURL with any password replaced by "xxxxx".
// Unparsable input is not echoed back.
func RedactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid url>"
	}
	return u.Redacted()
}

// stripURL drops the offending URL from a *url.Error so credentials do not
// leak into error messages.
func stripURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}
