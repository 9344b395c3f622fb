// Package config loads routekit settings from a YAML file, a .env file and
// the process environment.
//
// It uses Viper for file parsing and decoding, and godotenv for .env files.
// Environment variables carrying the loader prefix override file values.
// The prefix is stripped and the remainder is bound under every plausible
// key shape, so ROUTEKIT_BASE_URL populates both base_url and base.url.
//
// # Usage
//
//	var s routeclient.Settings
//	if err := config.Load("routekit", &s); err != nil {
//	    return err
//	}
//
// When the target implements ApplyDefaults or Validate they are called after
// decoding.
package config
