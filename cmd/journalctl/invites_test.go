package main

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInviteReport(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cutoff := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM invites i")).
		WithArgs(cutoff, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "pending", "used", "stale"}).
			AddRow("7c9e6679-7425-40de-944b-e07fc1f90ae7", "Smiths", 2, 5, 1).
			AddRow("9b2f3c1e-0000-4000-8000-000000000001", "Joneses", 0, 1, 3))

	stats, err := inviteReport(context.Background(), db, cutoff, nil)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, inviteStats{OrgID: "7c9e6679-7425-40de-944b-e07fc1f90ae7", OrgName: "Smiths", Pending: 2, Used: 5, Stale: 1}, stats[0])
	assert.Equal(t, 3, stats[1].Stale)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurgeInvitesFiltersOrganizations(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cutoff := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	orgs := []string{"7c9e6679-7425-40de-944b-e07fc1f90ae7"}

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM invites")).
		WithArgs(cutoff, pq.Array(orgs)).
		WillReturnResult(sqlmock.NewResult(0, 4))

	deleted, err := purgeInvites(context.Background(), db, cutoff, orgs)
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
