package service

// Service defines the lifecycle interface for infrastructure subsystems
// the arcade shell embeds: the music engine, content pipelines, input
//
// Lifecycle:
//  1. Construction (via factory)
//  2. Init(args...) - implicit configuration (parsed flags/env)
//  3. Start() - launch background goroutines, open devices
//  4. [runtime operation]
//  5. Stop() - halt goroutines, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Init before this one
	// Return nil or empty slice if no dependencies
	Dependencies() []string

	// Init configures the service from optional args
	// Args are service-specific (config path, seed, mute state)
	Init(args ...any) error

	// Start begins service operation (launches goroutines if any)
	// Called after all services have initialized
	Start() error

	// Stop halts service operation and releases resources
	// Must be idempotent - safe to call multiple times
	Stop() error
}
