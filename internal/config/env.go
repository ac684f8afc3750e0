package config

import (
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/lgbarn/chessboard-go/internal/errors"
)

// DefaultEnvFile is read by Load when no file is named. It may be absent.
const DefaultEnvFile = ".env"

// Environment variables read by ApplyEnv.
const (
	EnvAddr            = "CHESSBOARD_ADDR"
	EnvRequestTimeout  = "CHESSBOARD_REQUEST_TIMEOUT"
	EnvShutdownTimeout = "CHESSBOARD_SHUTDOWN_TIMEOUT"
	EnvLogLevel        = "CHESSBOARD_LOG_LEVEL"
	EnvLogFormat       = "CHESSBOARD_LOG_FORMAT"
	EnvPlacement       = "CHESSBOARD_PLACEMENT"
	EnvSelfCheckFilter = "CHESSBOARD_SELF_CHECK_FILTER"
	EnvDBPath          = "CHESSBOARD_DB_PATH"
	EnvTokenSecret     = "CHESSBOARD_TOKEN_SECRET"
	EnvTokenTTL        = "CHESSBOARD_TOKEN_TTL"
	EnvSquareSize      = "CHESSBOARD_SQUARE_SIZE"
	EnvAssetPrefix     = "CHESSBOARD_ASSET_PREFIX"
	EnvWorkers         = "CHESSBOARD_WORKERS"
)

// Load builds a Config from defaults, the dotenv file and the process
// environment. Process variables win over the file. An empty envFile means
// DefaultEnvFile, which is skipped silently when it does not exist.
func Load(envFile string) (*Config, error) {
	optional := envFile == ""
	if optional {
		envFile = DefaultEnvFile
	}

	fileVars, err := godotenv.Read(envFile)
	if err != nil {
		if !optional || !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "read %s: %v", envFile, err)
		}
		fileVars = map[string]string{}
	}

	getenv := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return fileVars[key]
	}

	cfg := NewConfig()
	if err := ApplyEnv(cfg, getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with every non-empty variable getenv returns.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	e := envReader{getenv: getenv}

	e.str(EnvAddr, &cfg.Server.Addr)
	e.duration(EnvRequestTimeout, &cfg.Server.RequestTimeout)
	e.duration(EnvShutdownTimeout, &cfg.Server.ShutdownTimeout)
	e.str(EnvLogLevel, &cfg.Log.Level)
	e.str(EnvLogFormat, &cfg.Log.Format)
	e.str(EnvPlacement, &cfg.Engine.Placement)
	e.boolean(EnvSelfCheckFilter, &cfg.Engine.SelfCheckFilter)
	e.str(EnvDBPath, &cfg.Store.DBPath)
	e.str(EnvTokenSecret, &cfg.Token.Secret)
	e.duration(EnvTokenTTL, &cfg.Token.TTL)
	e.integer(EnvSquareSize, &cfg.Render.SquareSize)
	e.str(EnvAssetPrefix, &cfg.Render.AssetPrefix)
	e.integer(EnvWorkers, &cfg.Analyze.Workers)

	return e.err
}

// envReader keeps the first conversion error and ignores later variables.
type envReader struct {
	getenv func(string) string
	err    error
}

func (e *envReader) lookup(key string) (string, bool) {
	if e.err != nil {
		return "", false
	}
	v := e.getenv(key)
	return v, v != ""
}

func (e *envReader) fail(key, value string, err error) {
	e.err = errors.Wrapf(errors.ErrInvalidConfig, "%s=%q: %v", key, value, err)
}

func (e *envReader) str(key string, dst *string) {
	if v, ok := e.lookup(key); ok {
		*dst = v
	}
}

func (e *envReader) boolean(key string, dst *bool) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, v, err)
		return
	}
	*dst = b
}

func (e *envReader) integer(key string, dst *int) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, v, err)
		return
	}
	*dst = n
}

func (e *envReader) duration(key string, dst *time.Duration) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, v, err)
		return
	}
	*dst = d
}
