// Package cmd implements the CLI commands for the Wazuh CLI application.
//
// # Architecture
//
//   - root.go: Main entry point, App struct, cobra command setup, and flags
//   - agent.go: Agent management commands (list, get, add, remove, restart, upgrade, key)
//   - control.go: Manager service commands (status, start, stop, restart, info)
//   - configcmd.go: Configuration commands (show, get, set, init, edit, path)
//   - login.go: Authentication commands (login, logout, status)
//   - interactive.go: Interactive REPL session with command completion
//
// # Key Components
//
// ## App
//
// The App struct holds application state: the loaded configuration plus
// the global flag values. It is created in Execute() and passed to every
// command constructor.
//
// ## InteractiveSession
//
// Manages the interactive shell. Input lines are tokenized and dispatched
// through the same cobra command tree the non-interactive CLI uses, so
// both surfaces stay in sync.
//
// # Usage
//
//	// Main entry point
//	func main() {
//	    cmd.Execute()
//	}
package cmd
