// Command moneyctl runs maintenance jobs and terminal reports against the
// money manager database.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/ndewijer/Money-Manager-Backend/internal/cli"
	"github.com/ndewijer/Money-Manager-Backend/internal/logging"
)

var (
	currency = flag.String("currency", "USD", "Currency used to format amounts")
	logLevel = flag.String("log-level", "warn", "Log level: debug, info, warn or error")
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	env := &cli.Env{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	cli.Register(commander, env)

	flag.Parse()

	env.Logger = logging.New(logging.Config{Level: *logLevel, Output: os.Stderr})
	env.Currency = *currency
	env.Open = cli.OpenFromConfig(env.Logger)

	os.Exit(int(commander.Execute(context.Background())))
}
