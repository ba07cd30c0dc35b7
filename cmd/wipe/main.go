package main

import (
	"bufio"
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/fleetlabs/geofleet/internal/config"
)

var (
	dsn         = flag.String("dsn", "", "Postgres DSN (default: env DATABASE_URL)")
	force       = flag.Bool("force", false, "Skip the confirmation prompt")
	advisoryKey = flag.Int64("advisory-lock", 0, "Optional Postgres advisory lock key to serialize destructive runs. 0 = disabled")
)

// resolveDSN picks the wipe target: explicit --dsn beats DATABASE_URL beats
// the local default. The env lookup must happen after godotenv has loaded
// .env.local, never at flag-default time, or a configured target would be
// silently ignored and the truncate would hit the default database.
func resolveDSN(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("DATABASE_URL"); env != "" {
		return env
	}
	return config.DefaultDSN
}

// Truncates all fleet tables and resets their sequences. Destructive; asks
// for confirmation unless --force.
func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()

	target := resolveDSN(*dsn)

	if !*force {
		fmt.Print("This will TRUNCATE vehicles/geofences and related tables. Type 'yes' to continue: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil || strings.TrimSpace(strings.ToLower(line)) != "yes" {
			fmt.Println("Aborted.")
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := sql.Open("pgx", target)
	if err != nil {
		fatalf("connect: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		fatalf("ping: %v", err)
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		fatalf("begin tx: %v", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op if already committed
	}()

	if *advisoryKey != 0 {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, *advisoryKey); err != nil {
			fatalf("advisory lock: %v", err)
		}
	}

	start := time.Now()
	_, err = tx.ExecContext(ctx, `
		TRUNCATE TABLE
		  vehicle_position_history,
		  vehicle_positions,
		  vehicles,
		  geofences
		RESTART IDENTITY CASCADE`)
	if err != nil {
		fatalf("truncate: %v", err)
	}

	if err := tx.Commit(); err != nil {
		fatalf("commit: %v", err)
	}
	fmt.Printf("Wiped vehicles and geofences in %.3fs.\n", time.Since(start).Seconds())
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
