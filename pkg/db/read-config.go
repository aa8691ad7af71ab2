package db

import "fmt"

// DBConfigFromYamlObj builds the connection config from the parsed yaml section.
// When username and password are set, the URI is assembled with credentials,
// otherwise the connection string is used as is.
func DBConfigFromYamlObj(yamlObj DBConfigYaml) DBConfig {
	uri := yamlObj.ConnectionStr
	if yamlObj.Username != "" && yamlObj.Password != "" {
		uri = fmt.Sprintf(`mongodb%s://%s:%s@%s`, yamlObj.ConnectionPrefix, yamlObj.Username, yamlObj.Password, yamlObj.ConnectionStr)
	}

	timeout := yamlObj.Timeout
	if timeout <= 0 {
		timeout = 30
	}

	return DBConfig{
		URI:             uri,
		DBNamePrefix:    yamlObj.DBNamePrefix,
		Timeout:         timeout,
		MaxPoolSize:     uint64(yamlObj.MaxPoolSize),
		IdleConnTimeout: yamlObj.IdleConnTimeout,
	}
}
