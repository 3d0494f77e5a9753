package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	"github.com/SscSPs/club_ledger_app/internal/middleware"
	"github.com/SscSPs/club_ledger_app/internal/utils"
)

const cliDateFormat = "2006-01-02"

// amountPrecision is the number of decimals printed for money in CLI output.
const amountPrecision = 0

func parseFlagDay(value string, loc *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(cliDateFormat, value, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return &t, nil
}

// withApp runs fn against a fully wired app with a command-scoped logger in ctx.
func withApp(cmd *cobra.Command, name string, fn func(ctx context.Context, a *app) error) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()
	ctx := middleware.WithLogger(cmd.Context(), a.logger.With(slog.String("command", name)))
	return fn(ctx, a)
}

func newSyncCommand() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "sync [club_id]",
		Short: "Pull bank transactions and reconcile one club, or every club with an account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, "sync", func(ctx context.Context, a *app) error {
				out := cmd.OutOrStdout()
				if len(args) == 0 {
					synced, failed := a.services.Sync.SyncAll(ctx)
					fmt.Fprintf(out, "synced %d clubs, %d failed\n", synced, failed)
					if failed > 0 {
						return fmt.Errorf("%d clubs failed to sync", failed)
					}
					return nil
				}

				fromDay, err := parseFlagDay(from, a.cfg.Location)
				if err != nil {
					return err
				}
				toDay, err := parseFlagDay(to, a.cfg.Location)
				if err != nil {
					return err
				}
				result, err := a.services.Sync.Sync(ctx, args[0], fromDay, toDay)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "ingested %d transactions, matched %d requests\n", result.Ingested, len(result.Matched))
				printEntries(out, result.Entries)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first day to fetch (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last day to fetch (YYYY-MM-DD)")
	return cmd
}

func newExpireCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "expire [club_id]",
		Short: "Expire pending payment requests past their deadline",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, "expire", func(ctx context.Context, a *app) error {
				var (
					expired int
					err     error
				)
				if len(args) == 0 {
					expired, err = a.services.Reconciliation.ExpireAll(ctx)
				} else {
					expired, err = a.services.Reconciliation.ExpireOldRequests(ctx, args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "expired %d requests\n", expired)
				return err
			})
		},
	}
}

func newSettleCommand() *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "settle <club_id> <event_id>",
		Short: "Close an event and raise equal refund requests for its payers",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, "settle", func(ctx context.Context, a *app) error {
				st, err := a.services.Settlement.SettleAndRefund(ctx, args[0], args[1], actor)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "income   %s\n", utils.FormatSigned(st.TotalIncome, amountPrecision))
				fmt.Fprintf(out, "expense  %s\n", utils.FormatSigned(st.TotalExpense.Neg(), amountPrecision))
				fmt.Fprintf(out, "balance  %s\n", utils.FormatSigned(st.Balance, amountPrecision))
				fmt.Fprintf(out, "refund   %s x %d (remainder %s)\n",
					utils.FormatWithPrecision(st.RefundPerPerson, amountPrecision), st.PayerCount,
					utils.FormatWithPrecision(st.Remainder, amountPrecision))
				for _, r := range st.Refunds {
					fmt.Fprintf(out, "  %s  %-20s %s\n", r.RequestID, r.MemberName, utils.FormatWithPrecision(r.ExpectedAmount, amountPrecision))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&actor, "actor", domain.SystemActorID, "officer recorded as settling the event")
	return cmd
}

func newStatementCommand() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "statement <club_id>",
		Short: "Print the ledger of a club for a date range and verify its running balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, "statement", func(ctx context.Context, a *app) error {
				fromDay, err := parseFlagDay(from, a.cfg.Location)
				if err != nil {
					return err
				}
				toDay, err := parseFlagDay(to, a.cfg.Location)
				if err != nil {
					return err
				}
				st, err := a.services.Ledger.Statement(ctx, args[0], *fromDay, *toDay)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "opening  %s\n", utils.FormatWithPrecision(st.OpeningBalance, amountPrecision))
				printEntries(out, st.Entries)
				fmt.Fprintf(out, "closing  %s  (in %s, out %s)\n",
					utils.FormatWithPrecision(st.ClosingBalance, amountPrecision),
					utils.FormatWithPrecision(st.TotalIn, amountPrecision),
					utils.FormatWithPrecision(st.TotalOut, amountPrecision))
				if st.BrokenEntryID != nil {
					return fmt.Errorf("running balance broken at entry %s", *st.BrokenEntryID)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last day (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func printEntries(out io.Writer, entries []domain.LedgerEntry) {
	for _, e := range entries {
		fmt.Fprintf(out, "%s  %-10s %12s %12s  %s\n",
			e.CreatedAt.Format(cliDateFormat), e.EntryType,
			utils.FormatSigned(e.Amount, amountPrecision),
			utils.FormatWithPrecision(e.BalanceAfter, amountPrecision),
			e.Memo)
	}
}
