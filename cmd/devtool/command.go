package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/osse101/Mivy_Go/internal/config"
)

const (
	defaultBaseURL    = "http://localhost:8080"
	defaultDBUser     = "postgres"
	defaultDBPassword = "postgres"
	defaultDBName     = "mivy"
)

// Command interface that all devtool commands must implement
type Command interface {
	Name() string
	Description() string
	Run(args []string) error
}

// Registry manages the available commands
type Registry struct {
	commands map[string]Command
}

// NewRegistry creates a new command registry
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
	}
}

// Register adds a command to the registry
func (r *Registry) Register(cmd Command) {
	r.commands[cmd.Name()] = cmd
}

// Get retrieves a command by name
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns a sorted list of all registered commands
func (r *Registry) List() []Command {
	cmds := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].Name() < cmds[j].Name()
	})
	return cmds
}

// databaseURL builds a connection string from DB_URL or the DB_* variables
func databaseURL() string {
	if dbURL := os.Getenv("DB_URL"); dbURL != "" {
		return dbURL
	}
	return config.BuildDBConnString(
		getEnv("DB_USER", defaultDBUser),
		getEnv("DB_PASSWORD", defaultDBPassword),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", defaultDBName))
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// PrintHelp prints the usage information
func (r *Registry) PrintHelp() {
	fmt.Println("Usage: devtool <command> [args...]")
	fmt.Println("\nAvailable Commands:")

	cmds := r.List()
	maxLen := 0
	for _, cmd := range cmds {
		if len(cmd.Name()) > maxLen {
			maxLen = len(cmd.Name())
		}
	}

	for _, cmd := range cmds {
		padding := maxLen - len(cmd.Name()) + 2
		fmt.Printf("  %s%*s%s\n", cmd.Name(), padding, "", cmd.Description())
	}
}
