// Package config loads the bot configuration.
//
// Configuration is YAML with ${VAR} environment substitution, so secrets
// like the Telegram token stay out of the file. Optional fields fall back
// to named defaults; Validate catches the rest before startup.
package config
