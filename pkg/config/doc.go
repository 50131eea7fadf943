// Package config loads typed configuration structs from the environment.
//
// Each package that needs settings declares its own struct with caarlos0/env
// tags (see mongo.Config and httpserver.Config) and the process loads them
// through Load or MustLoad. A .env file is honored for local development.
package config
