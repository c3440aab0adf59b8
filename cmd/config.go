package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"restaurant/internal/adapters/out/messaging"
	"restaurant/internal/core/domain/model/notification"
	"restaurant/internal/pkg/errs"

	"golang.org/x/text/language"
)

type Config struct {
	HTTPPort string
	LogLevel slog.Level

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	DispatchTimeout    time.Duration
	KitchenConcurrency int

	RetrySchedule    string
	RetryMaxAttempts int
	RetryBatchSize   int

	Currency       string
	Locale         language.Tag
	ReadyChannels  []notification.Channel
	ServedChannels []notification.Channel

	SMSProvider   messaging.ProviderConfig
	EmailProvider messaging.ProviderConfig
	PushProvider  messaging.ProviderConfig

	ServiceName  string
	OTLPEndpoint string
	OTLPInsecure bool
}

// LoadConfig reads the configuration through getenv, applying defaults for
// everything except the database credentials.
func LoadConfig(getenv func(string) string) (Config, error) {
	env := envReader{getenv: getenv}

	cfg := Config{
		HTTPPort: env.str("HTTP_PORT", "8080"),
		LogLevel: env.level("LOG_LEVEL", slog.LevelInfo),

		DBHost:     env.str("DB_HOST", "localhost"),
		DBPort:     env.str("DB_PORT", "5432"),
		DBUser:     env.str("DB_USER", ""),
		DBPassword: env.str("DB_PASSWORD", ""),
		DBName:     env.str("DB_NAME", ""),
		DBSslMode:  env.str("DB_SSLMODE", "disable"),

		DispatchTimeout:    env.duration("DISPATCH_TIMEOUT", 5*time.Second),
		KitchenConcurrency: env.integer("KITCHEN_DEPARTMENT_CONCURRENCY", 4),

		RetrySchedule:    env.str("DISPATCH_RETRY_SCHEDULE", "*/30 * * * * *"),
		RetryMaxAttempts: env.integer("DISPATCH_RETRY_MAX_ATTEMPTS", 5),
		RetryBatchSize:   env.integer("DISPATCH_RETRY_BATCH_SIZE", 50),

		Currency:       strings.ToUpper(env.str("CURRENCY", "USD")),
		Locale:         env.locale("LOCALE", language.AmericanEnglish),
		ReadyChannels:  env.channels("NOTIFY_READY_CHANNELS"),
		ServedChannels: env.channels("NOTIFY_SERVED_CHANNELS"),

		SMSProvider:   env.provider("NOTIF_SMS"),
		EmailProvider: env.provider("NOTIF_EMAIL"),
		PushProvider:  env.provider("NOTIF_PUSH"),

		ServiceName:  env.str("OTEL_SERVICE_NAME", "restaurant-orders"),
		OTLPEndpoint: env.str("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure: env.boolean("OTEL_EXPORTER_OTLP_INSECURE", false),
	}

	if cfg.DBUser == "" {
		env.errs = append(env.errs, errs.NewValueIsRequiredError("DB_USER"))
	}
	if cfg.DBName == "" {
		env.errs = append(env.errs, errs.NewValueIsRequiredError("DB_NAME"))
	}
	if cfg.DispatchTimeout <= 0 {
		env.errs = append(env.errs, errs.NewValueIsInvalidErrorWithCause("DISPATCH_TIMEOUT", errors.New("must be positive")))
	}

	if err := errors.Join(env.errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) ChannelPlan() map[notification.Type][]notification.Channel {
	return map[notification.Type][]notification.Channel{
		notification.OrderReady:  c.ReadyChannels,
		notification.OrderServed: c.ServedChannels,
	}
}

func (c Config) MessagingProviders() map[notification.Channel]messaging.ProviderConfig {
	return map[notification.Channel]messaging.ProviderConfig{
		notification.SMS:   c.SMSProvider,
		notification.Email: c.EmailProvider,
		notification.Push:  c.PushProvider,
	}
}

// envReader collects parse errors so that every bad variable is reported at once.
type envReader struct {
	getenv func(string) string
	errs   []error
}

func (r *envReader) str(key, def string) string {
	if v := strings.TrimSpace(r.getenv(key)); v != "" {
		return v
	}
	return def
}

func (r *envReader) integer(key string, def int) int {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.errs = append(r.errs, errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return n
}

func (r *envReader) boolean(key string, def bool) bool {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.errs = append(r.errs, errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return b
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.errs = append(r.errs, errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return d
}

func (r *envReader) level(key string, def slog.Level) slog.Level {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		r.errs = append(r.errs, errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return level
}

func (r *envReader) locale(key string, def language.Tag) language.Tag {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	tag, err := language.Parse(v)
	if err != nil {
		r.errs = append(r.errs, errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return tag
}

// channels parses a comma separated list. Empty means the built-in plan.
func (r *envReader) channels(key string) []notification.Channel {
	var result []notification.Channel
	for _, part := range strings.Split(r.str(key, ""), ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		channel := notification.Channel(part)
		if err := channel.Validate(); err != nil {
			r.errs = append(r.errs, errs.NewValueIsInvalidErrorWithCause(key, err))
			continue
		}
		result = append(result, channel)
	}
	return result
}

// provider reads <prefix>_PROVIDER, _URL, _TOKEN and _TARGET.
func (r *envReader) provider(prefix string) messaging.ProviderConfig {
	return messaging.ProviderConfig{
		Kind:   r.str(prefix+"_PROVIDER", messaging.KindLog),
		URL:    r.str(prefix+"_URL", ""),
		Token:  r.str(prefix+"_TOKEN", ""),
		Target: r.str(prefix+"_TARGET", ""),
	}
}
