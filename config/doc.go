// Package config loads REST client configuration from YAML files and
// environment variables.
//
// A service declares one client section per upstream API:
//
//	clients:
//	  inventory:
//	    base_url: "https://inventory.internal"
//	    timeout: 10s
//	    max_retries: 3
//	    backoff_base: 500ms
//
// Environment variables override file values using the RESTKIT prefix,
// e.g. RESTKIT_CLIENTS_INVENTORY_BASE_URL. An optional .env file is loaded
// first via godotenv.
package config
