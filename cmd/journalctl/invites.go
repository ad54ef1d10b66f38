package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/lib/pq"
	"github.com/spf13/cobra"
)

var (
	inviteOrgs      []string
	inviteOlderThan time.Duration
	invitePurge     bool
)

func init() {
	purgeReportCmd.Flags().StringSliceVar(&inviteOrgs, "org", nil, "Limit to these organization ids")
	purgeReportCmd.Flags().DurationVar(&inviteOlderThan, "older-than", 30*24*time.Hour, "Only count invites that expired at least this long ago")
	purgeReportCmd.Flags().BoolVar(&invitePurge, "purge", false, "Delete the reported unused invites")

	invitesCmd.AddCommand(purgeReportCmd)
}

var invitesCmd = &cobra.Command{
	Use:   "invites",
	Short: "Inspect and clean up invites",
}

// inviteStats is one organization's row in the purge report.
type inviteStats struct {
	OrgID   string
	OrgName string
	Pending int
	Used    int
	Stale   int
}

const inviteStatsQuery = `
SELECT o.id, o.name,
       COUNT(*) FILTER (WHERE i.used_at IS NULL AND i.expires_at > NOW()),
       COUNT(*) FILTER (WHERE i.used_at IS NOT NULL),
       COUNT(*) FILTER (WHERE i.used_at IS NULL AND i.expires_at <= $1)
FROM invites i
JOIN organizations o ON o.id = i.organization_id
WHERE ($2::uuid[] IS NULL OR i.organization_id = ANY($2::uuid[]))
GROUP BY o.id, o.name
ORDER BY o.name`

const purgeStaleInvites = `
DELETE FROM invites
WHERE used_at IS NULL AND expires_at <= $1
  AND ($2::uuid[] IS NULL OR organization_id = ANY($2::uuid[]))`

var purgeReportCmd = &cobra.Command{
	Use:   "purge-report",
	Short: "Report pending, used and stale invites per organization",
	Long: `purge-report counts invites per organization. Stale invites are unused
ones that expired before --older-than; --purge deletes them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := sql.Open("postgres", cfg.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer db.Close()

		cutoff := time.Now().UTC().Add(-inviteOlderThan)
		stats, err := inviteReport(cmd.Context(), db, cutoff, inviteOrgs)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ORGANIZATION\tID\tPENDING\tUSED\tSTALE")
		for _, s := range stats {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n", s.OrgName, s.OrgID, s.Pending, s.Used, s.Stale)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if !invitePurge {
			return nil
		}
		deleted, err := purgeInvites(cmd.Context(), db, cutoff, inviteOrgs)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d stale invites\n", deleted)
		return nil
	},
}

// orgFilter passes NULL when no organizations were named.
func orgFilter(orgIDs []string) interface{} {
	if len(orgIDs) == 0 {
		return nil
	}
	return pq.Array(orgIDs)
}

func inviteReport(ctx context.Context, db *sql.DB, cutoff time.Time, orgIDs []string) ([]inviteStats, error) {
	rows, err := db.QueryContext(ctx, inviteStatsQuery, cutoff, orgFilter(orgIDs))
	if err != nil {
		return nil, fmt.Errorf("querying invites: %w", err)
	}
	defer rows.Close()

	var stats []inviteStats
	for rows.Next() {
		var s inviteStats
		if err := rows.Scan(&s.OrgID, &s.OrgName, &s.Pending, &s.Used, &s.Stale); err != nil {
			return nil, fmt.Errorf("scanning invite stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func purgeInvites(ctx context.Context, db *sql.DB, cutoff time.Time, orgIDs []string) (int64, error) {
	res, err := db.ExecContext(ctx, purgeStaleInvites, cutoff, orgFilter(orgIDs))
	if err != nil {
		return 0, fmt.Errorf("deleting stale invites: %w", err)
	}
	return res.RowsAffected()
}
