package main

import (
	"os"
	"time"

	"github.com/P2B-ARIF/facebook-info-api-backend/pkg/db"
	httpclient "github.com/P2B-ARIF/facebook-info-api-backend/pkg/http-client"
	"github.com/P2B-ARIF/facebook-info-api-backend/pkg/identity"
	usermanagement "github.com/P2B-ARIF/facebook-info-api-backend/pkg/user-management"
	"github.com/P2B-ARIF/facebook-info-api-backend/pkg/user-management/pwhash"
	"github.com/P2B-ARIF/facebook-info-api-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v2"

	allowlistDB "github.com/P2B-ARIF/facebook-info-api-backend/pkg/db/allowlist"
	submissionDB "github.com/P2B-ARIF/facebook-info-api-backend/pkg/db/submission"
	userDB "github.com/P2B-ARIF/facebook-info-api-backend/pkg/db/user"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_DB_USERNAME = "DB_USERNAME"
	ENV_DB_PASSWORD = "DB_PASSWORD"

	ENV_USER_JWT_SIGN_KEY   = "USER_JWT_SIGN_KEY"
	ENV_MANAGEMENT_API_KEYS = "MANAGEMENT_API_KEYS"

	ENV_TWOFA_API_KEY = "TWOFA_API_KEY"
	ENV_INBOX_API_KEY = "INBOX_API_KEY"
)

type ApiConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`
	} `json:"gin_config" yaml:"gin_config"`

	// user management configs
	UserManagementConfig struct {
		BcryptCost    int `json:"bcrypt_cost" yaml:"bcrypt_cost"`
		UserJWTConfig struct {
			SignKey   string `json:"sign_key" yaml:"sign_key"`
			ExpiresIn string `json:"expires_in" yaml:"expires_in"`
		} `json:"user_jwt_config" yaml:"user_jwt_config"`
	} `json:"user_management_config" yaml:"user_management_config"`

	ManagementAPIKeys []string `json:"management_api_keys" yaml:"management_api_keys"`

	// IP allowlist configs
	UseIPAllowlist bool `json:"use_ip_allowlist" yaml:"use_ip_allowlist"`

	// Rate limiting configs
	RateLimitConfig struct {
		Use           bool   `json:"use" yaml:"use"`
		RedisAddr     string `json:"redis_addr" yaml:"redis_addr"`
		RedisPassword string `json:"redis_password" yaml:"redis_password"`
		MaxPerMinute  int64  `json:"max_per_minute" yaml:"max_per_minute"`
	} `json:"rate_limit_config" yaml:"rate_limit_config"`

	// Janitor configs
	JanitorConfig struct {
		Interval    string `json:"interval" yaml:"interval"`
		MaxEntryAge string `json:"max_entry_age" yaml:"max_entry_age"`
	} `json:"janitor_config" yaml:"janitor_config"`

	// DB configs
	DBConfigs struct {
		AppDB db.DBConfigYaml `json:"app_db" yaml:"app_db"`
	} `json:"db_configs" yaml:"db_configs"`

	// Identity generation configs
	IdentityConfig struct {
		NamesFilePath string `json:"names_file_path" yaml:"names_file_path"`

		TwoFAService ExternalServiceYaml `json:"twofa_service" yaml:"twofa_service"`
		InboxService ExternalServiceYaml `json:"inbox_service" yaml:"inbox_service"`
	} `json:"identity_config" yaml:"identity_config"`
}

type ExternalServiceYaml struct {
	RootURL string `json:"root_url" yaml:"root_url"`
	APIKey  string `json:"api_key" yaml:"api_key"`
	Timeout string `json:"timeout" yaml:"timeout"`
}

func (e ExternalServiceYaml) toClientConfig() httpclient.ClientConfig {
	timeout := 10 * time.Second
	if e.Timeout != "" {
		if parsed, err := utils.ParseDurationString(e.Timeout); err == nil {
			timeout = parsed
		}
	}
	return httpclient.ClientConfig{
		RootURL: e.RootURL,
		APIKey:  e.APIKey,
		Timeout: timeout,
	}
}

var (
	conf ApiConfig

	userJWTExpiresIn time.Duration
	janitorInterval  time.Duration
	maxEntryAge      time.Duration

	allowlistDBService  *allowlistDB.AllowlistDBService
	userDBService       *userDB.UserDBService
	submissionDBService *submissionDB.SubmissionDBService
)

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(conf.Logging)

	// Override secrets from environment variables
	secretsOverride()

	// Init DBs
	initDBs()

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	if conf.UserManagementConfig.BcryptCost > 0 {
		pwhash.InitBcryptCost(conf.UserManagementConfig.BcryptCost)
	}

	userJWTExpiresIn, err = utils.ParseDurationString(conf.UserManagementConfig.UserJWTConfig.ExpiresIn)
	if err != nil {
		panic(err)
	}

	janitorInterval = 60 * time.Second
	if conf.JanitorConfig.Interval != "" {
		janitorInterval, err = utils.ParseDurationString(conf.JanitorConfig.Interval)
		if err != nil {
			panic(err)
		}
	}

	maxEntryAge = 30 * 24 * time.Hour
	if conf.JanitorConfig.MaxEntryAge != "" {
		maxEntryAge, err = utils.ParseDurationString(conf.JanitorConfig.MaxEntryAge)
		if err != nil {
			panic(err)
		}
	}

	usermanagement.Init(
		userDBService,
		conf.UserManagementConfig.UserJWTConfig.SignKey,
		userJWTExpiresIn,
	)

	if conf.IdentityConfig.NamesFilePath != "" {
		if err := identity.LoadNames(conf.IdentityConfig.NamesFilePath); err != nil {
			panic(err)
		}
	}
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.AppDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.AppDB.Password = dbPassword
	}

	if signKey := os.Getenv(ENV_USER_JWT_SIGN_KEY); signKey != "" {
		conf.UserManagementConfig.UserJWTConfig.SignKey = signKey
	}

	if apiKeys := os.Getenv(ENV_MANAGEMENT_API_KEYS); apiKeys != "" {
		conf.ManagementAPIKeys = utils.SplitAndTrim(apiKeys, ",")
	}

	if apiKey := os.Getenv(ENV_TWOFA_API_KEY); apiKey != "" {
		conf.IdentityConfig.TwoFAService.APIKey = apiKey
	}

	if apiKey := os.Getenv(ENV_INBOX_API_KEY); apiKey != "" {
		conf.IdentityConfig.InboxService.APIKey = apiKey
	}
}

func initDBs() {
	var err error
	dbConfig := db.DBConfigFromYamlObj(conf.DBConfigs.AppDB)

	allowlistDBService, err = allowlistDB.NewAllowlistDBService(dbConfig)
	if err != nil {
		panic(err)
	}

	userDBService, err = userDB.NewUserDBService(dbConfig)
	if err != nil {
		panic(err)
	}

	submissionDBService, err = submissionDB.NewSubmissionDBService(dbConfig)
	if err != nil {
		panic(err)
	}
}
