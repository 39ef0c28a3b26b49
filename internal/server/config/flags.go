package config

import (
	"flag"
	"os"

	"github.com/heirloomhq/heirloom/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   master secret for field encryption
//	-p bool     use the relational backend (pass -p=false to force in-memory)
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.MasterSecret, "s", config.MasterSecret, "master secret")
	fs.BoolVar(&config.UsePostgres, "p", config.UsePostgres, "use the relational backend")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
