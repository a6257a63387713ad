package initializers

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	DBDriver string `envconfig:"DB_DRIVER" default:"mysql"`
	DBURL    string `envconfig:"DB_URL"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"720h"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:4200,https://www.amexan.store"`
	FrontendURL        string   `envconfig:"FRONTEND_URL" default:"http://localhost:4200"`

	FromEmail         string `envconfig:"FROM_EMAIL"`
	FromEmailPassword string `envconfig:"FROM_EMAIL_PASSWORD"`
	FromEmailSMTP     string `envconfig:"FROM_EMAIL_SMTP"`
	SMTPAddress       string `envconfig:"SMTP_ADDRESS"`

	S3Bucket         string `envconfig:"S3_BUCKET" default:"amexan"`
	NotifyWebhookURL string `envconfig:"NOTIFY_WEBHOOK_URL"`

	CheckoutMaxAttempts int     `envconfig:"CHECKOUT_MAX_ATTEMPTS" default:"3"`
	CheckoutRateLimit   float64 `envconfig:"CHECKOUT_RATE_LIMIT" default:"2"`
	CheckoutBurst       int     `envconfig:"CHECKOUT_BURST" default:"5"`

	AdminEmail    string `envconfig:"ADMIN_EMAIL"`
	AdminUsername string `envconfig:"ADMIN_USERNAME" default:"admin"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
}

// MailEnabled reports whether enough SMTP settings are present to send mail.
func (c *Config) MailEnabled() bool {
	return c.FromEmail != "" && c.SMTPAddress != ""
}

// LoadEnv reads .env into the process environment. A missing file is not an error.
func LoadEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must not be empty")
	}
	if cfg.CheckoutMaxAttempts < 1 {
		return nil, errors.New("CHECKOUT_MAX_ATTEMPTS must be at least 1")
	}
	return &cfg, nil
}
