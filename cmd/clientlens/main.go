// Command clientlens asks one question against the configured store and
// prints the answer.
//
//	clientlens -user 2 "how many active clients do I have?"
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/clientlens/clientlens-api/internal/app"
	"github.com/clientlens/clientlens-api/internal/core/ports"
	"github.com/clientlens/clientlens-api/internal/pkg/config"
	"github.com/clientlens/clientlens-api/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		userID  = flag.Int64("user", 1, "id of the user asking")
		asJSON  = flag.Bool("json", false, "print the full result as JSON")
		list    = flag.Bool("users", false, "list users and exit")
		timeout = flag.Duration("timeout", 30*time.Second, "overall deadline")
	)
	flag.Parse()

	cfg, err := config.Load(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return 2
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Output: os.Stderr})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	a, err := app.Build(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("startup failed")
		return 1
	}
	defer a.Close()

	if *list {
		users, err := a.Directory.ListUsers(ctx)
		if err != nil {
			log.Error().Err(err).Msg("list users")
			return 1
		}
		for _, u := range users {
			fmt.Printf("%d\t%s\t%s\n", u.ID, u.Name, u.Role)
		}
		return 0
	}

	query := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if query == "" {
		fmt.Fprintln(os.Stderr, "usage: clientlens [-user N] [-json] <question>")
		return 2
	}

	res, err := a.Query.Ask(ctx, ports.QueryInput{Query: query, UserID: *userID})
	if err != nil {
		log.Error().Err(err).Int64("user_id", *userID).Msg("query failed")
		return 1
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return 1
		}
		return 0
	}
	fmt.Println(res.Answer)
	return 0
}
