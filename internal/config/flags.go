package config

import (
	"flag"
	"os"
)

// parses CLI flags for the server binary
func ParseServerFlags() Flags {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	migrate := fs.Bool("migrate", false, "apply the database schema before serving")
	addr := fs.String("addr", "", "listen address, overrides PORT")
	fs.Parse(os.Args[1:]) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return Flags{Migrate: *migrate, Addr: *addr}
}

// returns default flags for the server binary
func DefaultServerFlags() Flags {
	return Flags{Migrate: false, Addr: ""}
}
