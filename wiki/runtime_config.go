package wiki

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"log/slog"
	"strconv"

	"github.com/gorilla/securecookie"
)

// RuntimeConfig holds configuration values stored in the database.
// These settings can be modified at runtime without restarting the service.
type RuntimeConfig struct {
	CookieSecret  []byte
	UseRichEditor bool
}

// Setting key constants
const (
	SettingCookieSecret  = "cookie_secret"
	SettingUseRichEditor = "use_rich_editor"
	SettingSchemaVersion = "schema_version"
)

// LoadRuntimeConfig loads runtime configuration from the database.
// If settings don't exist, it creates them; useRichEditor seeds the editor
// setting on first run.
func LoadRuntimeConfig(db *sql.DB, useRichEditor bool) (*RuntimeConfig, error) {
	config := &RuntimeConfig{}

	cookieSecretB64, err := GetOrCreateSetting(db, SettingCookieSecret, func() string {
		secret := securecookie.GenerateRandomKey(64)
		if secret == nil {
			slog.Error("failed to generate cookie secret")
			return ""
		}
		return base64.StdEncoding.EncodeToString(secret)
	})
	if err != nil {
		return nil, err
	}
	config.CookieSecret, err = base64.StdEncoding.DecodeString(cookieSecretB64)
	if err != nil {
		return nil, err
	}
	if len(config.CookieSecret) == 0 {
		return nil, errors.New("cookie secret is empty")
	}

	richStr, err := GetOrCreateSetting(db, SettingUseRichEditor, func() string {
		return strconv.FormatBool(useRichEditor)
	})
	if err != nil {
		return nil, err
	}
	config.UseRichEditor, err = strconv.ParseBool(richStr)
	if err != nil {
		return nil, err
	}

	slog.Info("runtime config loaded from database")
	return config, nil
}

// GetOrCreateSetting retrieves a setting from the database, or creates it with
// the value returned by defaultFn if it doesn't exist.
func GetOrCreateSetting(db *sql.DB, key string, defaultFn func() string) (string, error) {
	var value string
	err := db.QueryRow("SELECT value FROM Setting WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		value = defaultFn()
		_, err = db.Exec(
			"INSERT INTO Setting (key, value) VALUES (?, ?)",
			key, value,
		)
		if err != nil {
			return "", err
		}
		slog.Info("created default setting", "key", key)
		return value, nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// GetSetting reads a single setting. A missing key returns ErrGenericNotFound.
func GetSetting(ctx context.Context, db *sql.DB, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx, "SELECT value FROM Setting WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrGenericNotFound
	}
	return value, err
}

// UpdateSetting updates an existing setting or creates it if it doesn't exist.
func UpdateSetting(db *sql.DB, key string, value string) error {
	result, err := db.Exec(
		"UPDATE Setting SET value = ?, updated_at = CURRENT_TIMESTAMP WHERE key = ?",
		value, key,
	)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		_, err = db.Exec(
			"INSERT INTO Setting (key, value) VALUES (?, ?)",
			key, value,
		)
		return err
	}
	return nil
}
