// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The AI gateway lives here too: it owns prompt templates, response
// parsing and fallbacks, and reaches the provider only through
// driven.TextGenerator.
package services
