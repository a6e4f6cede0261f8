// Package cli provides command-line interface setup and configuration
// for the lingoanki application. It handles flag parsing, command
// creation, and configuration management using cobra and viper.
package cli
