// Package models lists the chat models an OpenAI-compatible endpoint
// offers, so users can pick one for --model.
package models
