// Package models lists the OpenAI chat models available with the user's
// API key, to help pick a model for sentence translation.
package models
