package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/vslakit/vsla_ledger_app/internal/core/services"
	"github.com/vslakit/vsla_ledger_app/internal/platform/config"
	"github.com/vslakit/vsla_ledger_app/internal/repositories/database/pgsql"
	"github.com/vslakit/vsla_ledger_app/pkg/database"
)

// recalc_balances audits every member's and group's cached balances against
// the entry log. By default it only reports drift; with -apply it rewrites
// drifted caches from the recomputed values. Ledger entries are never touched.
func main() {
	apply := flag.Bool("apply", false, "repair drifted cached balances instead of only reporting them")
	actor := flag.String("actor", "system", "user ID recorded as the updater on repaired rows")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewContainer(repos, cfg.LoanMaxMultiplier)

	report, err := serviceContainer.Balance.Reconcile(ctx, *apply, *actor)
	if err != nil {
		logger.Error("Reconciliation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Reconciliation run at %s\n", report.RanAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("Checked %d owners, %d drifted\n", report.CheckedOwners, report.DriftedOwners)
	for _, d := range report.Deltas {
		status := "drift"
		if d.Repaired {
			status = "repaired"
		}
		fmt.Printf("  [%s] %s/%s balance %s -> %s, loan balance %s -> %s\n",
			status, d.OwnerType, d.OwnerID,
			d.CachedBalance, d.ComputedBalance,
			d.CachedLoanBalance, d.ComputedLoanBalance)
	}
	if report.DriftedOwners > 0 && !report.Applied {
		fmt.Println("Run again with -apply to repair the drifted caches.")
		os.Exit(2)
	}
}
