package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	NotifyTransportKafka = "kafka"
	NotifyTransportHTTP  = "http"
)

type (
	Tasks struct {
		CompliancePurgeInterval  time.Duration
		LiveOffersReportInterval time.Duration
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // middleware rate limiter refill
		RateLimiterBurst int           // middleware rate limiter capacity
		PprofEnabled     bool
		PprofPort        string
	}

	Database struct {
		Driver   string
		SeedsDir string
		Migrate  bool
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}

	Dispatch struct {
		DefaultSLA       time.Duration
		NotifyTo         string
		IndustryNotifyTo string
	}

	Compliance struct {
		URL      string // пустой адрес отключает внешний источник, работают только сиды
		CacheTTL time.Duration
		Timeout  time.Duration
	}

	Matching struct {
		GRPCHost string
		Timeout  time.Duration
	}

	Notify struct {
		Transport string
		URL       string
		QueueSize int
		Timeout   time.Duration
	}

	Kafka struct {
		PortHealthcheck string
		Brokers         string
		Topic           string
		ConsumerGroup   string
		Sarama          Sarama
		Handlers        KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		Notification Notification
	}

	Notification struct {
		ProcessTimeout time.Duration
	}

	Config struct {
		Tasks                Tasks
		Server               HTTPServer
		Database             Database
		Dispatch             Dispatch
		Compliance           Compliance
		Matching             Matching
		Notify               Notify
		Kafka                Kafka
		InternalServiceToken string
	}
)

// Load конфигурация сервиса диспетчеризации.
func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

// LoadWorker конфигурация воркера уведомлений: только Kafka-консьюмер и почтовый сервис.
func LoadWorker() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateWorkerConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	compliancePurge, err := osGetEnvDuration("BACKGROUND_COMPLIANCE_PURGE_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	liveOffersReport, err := osGetEnvDuration("BACKGROUND_LIVE_OFFERS_REPORT_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	notificationTimeout, err := osGetEnvDuration("KAFKA_HANDLER_NOTIFICATION_PROCESS_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	migrate, err := osGetBool("POSTGRES_MIGRATE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	defaultSLA, err := osGetEnvDuration("DISPATCH_DEFAULT_SLA")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	complianceTTL, err := osGetEnvDuration("COMPLIANCE_CACHE_TTL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	complianceTimeout, err := osGetEnvDuration("COMPLIANCE_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	matchingTimeout, err := osGetEnvDuration("MATCHING_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	notifyQueueSize, err := osGetInt("NOTIFY_QUEUE_SIZE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	notifyTimeout, err := osGetEnvDuration("NOTIFY_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		Tasks: Tasks{
			CompliancePurgeInterval:  compliancePurge,
			LiveOffersReportInterval: liveOffersReport,
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		Database: Database{
			Driver:   osGetString("STORAGE_DRIVER", StorageDriverPostgres),
			SeedsDir: os.Getenv("SEEDS_DIR"),
			Migrate:  migrate,
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		},
		Dispatch: Dispatch{
			DefaultSLA:       defaultSLA,
			NotifyTo:         os.Getenv("DISPATCH_NOTIFY_TO"),
			IndustryNotifyTo: os.Getenv("INDUSTRY_NOTIFY_TO"),
		},
		Compliance: Compliance{
			URL:      os.Getenv("COMPLIANCE_URL"),
			CacheTTL: complianceTTL,
			Timeout:  complianceTimeout,
		},
		Matching: Matching{
			GRPCHost: os.Getenv("MATCHING_GRPC_HOST"),
			Timeout:  matchingTimeout,
		},
		Notify: Notify{
			Transport: osGetString("NOTIFY_TRANSPORT", NotifyTransportKafka),
			URL:       os.Getenv("NOTIFICATIONS_URL"),
			QueueSize: notifyQueueSize,
			Timeout:   notifyTimeout,
		},
		Kafka: Kafka{
			Brokers:         os.Getenv("KAFKA_BROKERS"),
			Topic:           os.Getenv("KAFKA_TOPIC"),
			ConsumerGroup:   os.Getenv("KAFKA_CONSUMER_GROUP"),
			PortHealthcheck: os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				Notification: Notification{
					ProcessTimeout: notificationTimeout,
				},
			},
		},
		InternalServiceToken: os.Getenv("INTERNAL_SERVICE_TOKEN"),
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if err := validateDatabase(cfg.Database); err != nil {
		return err
	}

	if cfg.Tasks.CompliancePurgeInterval == time.Duration(0) {
		return errors.New("BACKGROUND_COMPLIANCE_PURGE_INTERVAL is required")
	}
	if cfg.Tasks.LiveOffersReportInterval == time.Duration(0) {
		return errors.New("BACKGROUND_LIVE_OFFERS_REPORT_INTERVAL is required")
	}

	if cfg.Dispatch.DefaultSLA < 0 {
		return errors.New("DISPATCH_DEFAULT_SLA must not be negative")
	}

	switch cfg.Notify.Transport {
	case NotifyTransportKafka:
		if cfg.Kafka.Brokers == "" {
			return errors.New("KAFKA_BROKERS is required")
		}
		if cfg.Kafka.Topic == "" {
			return errors.New("KAFKA_TOPIC is required")
		}
		if cfg.Kafka.Sarama.Version == "" {
			return errors.New("KAFKA_SARAMA_VERSION is required")
		}
	case NotifyTransportHTTP:
		if cfg.Notify.URL == "" {
			return errors.New("NOTIFICATIONS_URL is required")
		}
	default:
		return fmt.Errorf("NOTIFY_TRANSPORT must be %q or %q, got %q", NotifyTransportKafka, NotifyTransportHTTP, cfg.Notify.Transport)
	}

	return nil
}

func validateDatabase(db Database) error {
	switch db.Driver {
	case StorageDriverMemory:
		if db.SeedsDir == "" {
			return errors.New("SEEDS_DIR is required for memory storage")
		}
		return nil
	case StorageDriverPostgres:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StorageDriverPostgres, StorageDriverMemory, db.Driver)
	}

	if db.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if db.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if db.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if db.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if db.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if db.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}
	return nil
}

func validateWorkerConfig(cfg *Config) error {
	if cfg.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.Topic == "" {
		return errors.New("KAFKA_TOPIC is required")
	}
	if cfg.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if cfg.Kafka.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}
	if cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}
	if cfg.Kafka.Handlers.Notification.ProcessTimeout == time.Duration(0) {
		return errors.New("KAFKA_HANDLER_NOTIFICATION_PROCESS_TIMEOUT is required")
	}
	if cfg.Notify.URL == "" {
		return errors.New("NOTIFICATIONS_URL is required")
	}
	return nil
}

func osGetString(s, fallback string) string {
	if val := os.Getenv(s); val != "" {
		return val
	}
	return fallback
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
