package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is passed into every handler factory.
type Config struct {
	Env            string        `yaml:"env"`
	Port           string        `yaml:"port"`
	MongoURI       string        `yaml:"mongo_uri"`
	DBName         string        `yaml:"db_name"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	AllowedOrigins []string      `yaml:"allowed_origins"`

	Admin      AdminConfig      `yaml:"admin"`
	Session    SessionConfig    `yaml:"session"`
	Cloudinary CloudinaryConfig `yaml:"cloudinary"`
	Images     ImageConfig      `yaml:"images"`
}

type AdminConfig struct {
	Email string `yaml:"email"`
	// Password is compared verbatim when PasswordHash is empty.
	Password     string `yaml:"password"`
	PasswordHash string `yaml:"password_hash"`
}

type SessionConfig struct {
	Secret     string        `yaml:"secret"`
	CookieName string        `yaml:"cookie_name"`
	TTL        time.Duration `yaml:"ttl"`
	LoginPath  string        `yaml:"login_path"`
	HomePath   string        `yaml:"home_path"`
}

type CloudinaryConfig struct {
	CloudName string `yaml:"cloud_name"`
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
}

type ImageConfig struct {
	MaxWidth  int `yaml:"max_width"`
	MaxHeight int `yaml:"max_height"`
}

// Default returns the built-in settings before files and env are applied.
func Default() *Config {
	return &Config{
		Env:            "development",
		Port:           "8080",
		MongoURI:       "mongodb://localhost:27017",
		DBName:         "ngo_portal",
		RequestTimeout: 15 * time.Second,
		AllowedOrigins: []string{"http://localhost:3000"},
		Session: SessionConfig{
			CookieName: "admin_session",
			TTL:        24 * time.Hour,
			LoginPath:  "/login",
			HomePath:   "/admin",
		},
		Images: ImageConfig{MaxWidth: 1920, MaxHeight: 1920},
	}
}

// Load reads .env (if present), the YAML file named by CONFIG_FILE (if set)
// and finally environment variables, in that order of precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment")
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Env, "APP_ENV")
	setString(&c.Port, "PORT")
	setString(&c.MongoURI, "MONGO_URI")
	setString(&c.DBName, "DB_NAME")
	setString(&c.Admin.Email, "ADMIN_EMAIL")
	setString(&c.Admin.Password, "ADMIN_PASSWORD")
	setString(&c.Admin.PasswordHash, "ADMIN_PASSWORD_HASH")
	setString(&c.Session.Secret, "SESSION_SECRET")
	setString(&c.Cloudinary.CloudName, "CLOUDINARY_CLOUD_NAME")
	setString(&c.Cloudinary.APIKey, "CLOUDINARY_API_KEY")
	setString(&c.Cloudinary.APISecret, "CLOUDINARY_API_SECRET")

	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("REQUEST_TIMEOUT: %w", err)
		}
		c.RequestTimeout = d
	}
	if err := setInt(&c.Images.MaxWidth, "IMAGE_MAX_WIDTH"); err != nil {
		return err
	}
	return setInt(&c.Images.MaxHeight, "IMAGE_MAX_HEIGHT")
}

// Validate rejects settings the service cannot run without.
func (c *Config) Validate() error {
	var errs []error
	if c.Session.Secret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is required"))
	}
	if c.Admin.Email == "" {
		errs = append(errs, errors.New("ADMIN_EMAIL is required"))
	}
	if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		errs = append(errs, errors.New("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required"))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("session ttl must be positive"))
	}
	return errors.Join(errs...)
}

// IsProduction controls Secure cookies and gin release mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
