// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the assembly lifecycle: load declarations,
// register them, validate the contracts, sort the modules and build one
// container per module. It is decoupled from any specific entrypoint like a
// CLI or server.
package app
