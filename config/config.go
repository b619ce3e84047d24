package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// StorageKind selects the active storage backend. It is resolved exactly once
// at load time so the rest of the code never re-derives the choice from
// credential strings.
type StorageKind int

const (
	StorageLocal StorageKind = iota
	StorageS3
)

func (k StorageKind) String() string {
	if k == StorageS3 {
		return "s3"
	}
	return "local"
}

// S3Config holds object-store settings. Endpoint is optional and supports
// S3-compatible stores (R2, MinIO).
type S3Config struct {
	Region          string
	Endpoint        string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
}

// DriveConfig holds the OAuth refresh-token credentials for the archival
// mirror. The mirror is disabled when any field is empty.
type DriveConfig struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

func (d DriveConfig) Enabled() bool {
	return d.ClientID != "" && d.ClientSecret != "" && d.RefreshToken != ""
}

type Config struct {
	DatabasePath string

	// PublicDir is the public-serving directory: the local storage backend
	// roots here, and relative branding asset references resolve against it.
	PublicDir string

	IntakeRoot    string
	ProcessedRoot string

	HTTPAddr   string
	FTPEnabled bool
	FTPPort    int

	StorageKind StorageKind
	S3          S3Config
	Drive       DriveConfig
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		zap.L().Warn("invalid integer env var, using default",
			zap.String("var", envVar), zap.String("value", valStr), zap.Int("default", defaultVal))
		return defaultVal
	}
	return val
}

func getEnvBoolOrDefault(envVar string, defaultVal bool) bool {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}

// s3Configured reports whether the object store credentials are all present
// and none of them are the placeholder values shipped in .env.example.
func s3Configured(s S3Config) bool {
	if s.AccessKeyID == "" || s.SecretAccessKey == "" || s.Bucket == "" {
		return false
	}
	if s.AccessKeyID == "your-access-key" {
		return false
	}
	if strings.Contains(s.Endpoint, "<accountid>") {
		return false
	}
	return true
}

func Load() (Config, error) {
	publicDir := getEnvOrDefault("PUBLIC_DIR", "./public")
	absPublic, err := filepath.Abs(publicDir)
	if err != nil {
		return Config{}, fmt.Errorf("failed to resolve public dir '%s': %w", publicDir, err)
	}

	intakeRoot := getEnvOrDefault("INTAKE_ROOT", "./ingest")
	absIntake, err := filepath.Abs(intakeRoot)
	if err != nil {
		return Config{}, fmt.Errorf("failed to resolve intake root '%s': %w", intakeRoot, err)
	}

	processedRoot := getEnvOrDefault("PROCESSED_ROOT", "./processed")
	absProcessed, err := filepath.Abs(processedRoot)
	if err != nil {
		return Config{}, fmt.Errorf("failed to resolve processed root '%s': %w", processedRoot, err)
	}

	s3 := S3Config{
		Region:          getEnvOrDefault("AWS_REGION", "us-east-1"),
		Endpoint:        os.Getenv("S3_ENDPOINT"),
		Bucket:          os.Getenv("S3_BUCKET_NAME"),
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
	}

	kind := StorageLocal
	if s3Configured(s3) {
		kind = StorageS3
	}

	cfg := Config{
		DatabasePath:  getEnvOrDefault("DATABASE_PATH", "eventpix.db"),
		PublicDir:     absPublic,
		IntakeRoot:    absIntake,
		ProcessedRoot: absProcessed,
		HTTPAddr:      ":" + strconv.Itoa(getEnvIntOrDefault("HTTP_PORT", 3000)),
		FTPEnabled:    getEnvBoolOrDefault("FTP_ENABLED", true),
		FTPPort:       getEnvIntOrDefault("FTP_PORT", 2121),
		StorageKind:   kind,
		S3:            s3,
		Drive: DriveConfig{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			RefreshToken: os.Getenv("GOOGLE_REFRESH_TOKEN"),
		},
	}

	return cfg, nil
}
