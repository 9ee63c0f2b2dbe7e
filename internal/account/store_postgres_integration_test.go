//go:build integration

package account_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"

	"tokenbound/internal/account"
	"tokenbound/internal/derive"
	"tokenbound/pkg/domain"
	"tokenbound/pkg/platform/sentinel"
	"tokenbound/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *account.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = account.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "accounts"))
}

func (s *PostgresStoreSuite) newRecord(tokenID uint64) account.Record {
	contract, err := domain.ParseAddress("0x00000000000000000000000000000000000000aa")
	s.Require().NoError(err)
	accountID, err := domain.ParseAddress("0x00000000000000000000000000000000000000bb")
	s.Require().NoError(err)
	implID, err := domain.ParseAddress("0x0000000000000000000000000000000000000202")
	s.Require().NoError(err)
	key, err := domain.NewKey(1, contract, tokenID)
	s.Require().NoError(err)
	return account.Record{
		Key:              key,
		AccountID:        accountID,
		ImplementationID: implID,
		Salt:             derive.DefaultSalt,
		CreatedAt:        time.Now().UTC().Truncate(time.Microsecond),
	}
}

func (s *PostgresStoreSuite) TestCreateAndFindRoundTrip() {
	ctx := context.Background()
	record := s.newRecord(42)

	stored, created, err := s.store.CreateIfAbsent(ctx, record)
	s.Require().NoError(err)
	s.True(created)
	s.Equal(record, stored)

	found, err := s.store.Find(ctx, record.Key)
	s.Require().NoError(err)
	s.Equal(record.AccountID, found.AccountID)
	s.Equal(record.ImplementationID, found.ImplementationID)
	s.Equal(record.Salt, found.Salt)
	s.WithinDuration(record.CreatedAt, found.CreatedAt, time.Millisecond)
}

func (s *PostgresStoreSuite) TestFirstWriterWins() {
	ctx := context.Background()
	first := s.newRecord(42)

	_, created, err := s.store.CreateIfAbsent(ctx, first)
	s.Require().NoError(err)
	s.True(created)

	second := first
	second.AccountID[0] ^= 0xff
	stored, created, err := s.store.CreateIfAbsent(ctx, second)
	s.Require().NoError(err)
	s.False(created)
	s.Equal(first.AccountID, stored.AccountID, "the first stored record must survive")
}

func (s *PostgresStoreSuite) TestFindMissingReturnsNotFound() {
	record := s.newRecord(404)
	_, err := s.store.Find(context.Background(), record.Key)
	s.Require().Error(err)
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *PostgresStoreSuite) TestMaxTokenID() {
	ctx := context.Background()
	record := s.newRecord(^uint64(0))

	_, created, err := s.store.CreateIfAbsent(ctx, record)
	s.Require().NoError(err)
	s.True(created)

	found, err := s.store.Find(ctx, record.Key)
	s.Require().NoError(err)
	s.Equal(record.Key.TokenID, found.Key.TokenID)
}

// TestConcurrentCreation verifies that concurrent creation attempts for the
// same key result in exactly one insert.
func (s *PostgresStoreSuite) TestConcurrentCreation() {
	ctx := context.Background()
	record := s.newRecord(42)
	const goroutines = 50

	var wg sync.WaitGroup
	var createdCount atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, created, err := s.store.CreateIfAbsent(ctx, record)
			if err == nil && created {
				createdCount.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), createdCount.Load(), "exactly one create should win")
}
