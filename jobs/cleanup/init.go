package main

import (
	"os"
	"time"

	"github.com/P2B-ARIF/facebook-info-api-backend/pkg/db"
	"github.com/P2B-ARIF/facebook-info-api-backend/pkg/utils"
	"gopkg.in/yaml.v2"

	allowlistDB "github.com/P2B-ARIF/facebook-info-api-backend/pkg/db/allowlist"
	userDB "github.com/P2B-ARIF/facebook-info-api-backend/pkg/db/user"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_DB_USERNAME = "DB_USERNAME"
	ENV_DB_PASSWORD = "DB_PASSWORD"
)

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// DB configs
	DBConfigs struct {
		AppDB db.DBConfigYaml `json:"app_db" yaml:"app_db"`
	} `json:"db_configs" yaml:"db_configs"`

	CleanupConfig struct {
		MaxEntryAge string `json:"max_entry_age" yaml:"max_entry_age"`
	} `json:"cleanup_config" yaml:"cleanup_config"`

	RunTasks struct {
		CleanUpAllowlistEntries bool `json:"clean_up_allowlist_entries" yaml:"clean_up_allowlist_entries"`
		ExpireMemberships       bool `json:"expire_memberships" yaml:"expire_memberships"`
	} `json:"run_tasks" yaml:"run_tasks"`
}

var conf config

var (
	maxEntryAge time.Duration

	allowlistDBService *allowlistDB.AllowlistDBService
	userDBService      *userDB.UserDBService
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

	maxEntryAge = 30 * 24 * time.Hour
	if conf.CleanupConfig.MaxEntryAge != "" {
		maxEntryAge, err = utils.ParseDurationString(conf.CleanupConfig.MaxEntryAge)
		if err != nil {
			panic(err)
		}
	}

	// Init DBs
	initDBs()
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.AppDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.AppDB.Password = dbPassword
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
}
