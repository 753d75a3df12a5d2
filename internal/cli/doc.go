// Package cli provides command-line interface setup and configuration
// for the vocabbuilder application. It handles flag parsing, command
// creation, configuration management using cobra and viper, and the
// diagnostic logger.
package cli
