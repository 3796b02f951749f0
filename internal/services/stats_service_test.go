package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delulu-backend/internal/models"
)

type statsFixture struct {
	stats   *StatsService
	delulus *DeluluService
	stakes  *StakeService
	claims  *ClaimService
}

func newStatsFixture(t *testing.T) *statsFixture {
	db := setupTestDB(t)
	users := NewUserService(db)
	return &statsFixture{
		stats:   NewStatsService(db),
		delulus: NewDeluluService(db, users),
		stakes:  NewStakeService(db, users),
		claims:  NewClaimService(db, users),
	}
}

// seed: two delulus by testAddress; testAddress2 stakes 10+20 and
// claims 25; testAddress3 stakes 5 three times.
func (f *statsFixture) seed(t *testing.T) {
	t.Helper()

	createTestDelulu(t, f.delulus, 1, testAddress)
	createTestDelulu(t, f.delulus, 2, testAddress)

	txSeq := 0
	stake := func(addr, deluluID, amount string, side bool) {
		txSeq++
		_, err := f.stakes.Create(&models.CreateStakeRequest{
			UserAddress: addr,
			DeluluID:    deluluID,
			Amount:      amount,
			Side:        &side,
			TxHash:      testTxHash(txSeq),
		})
		require.NoError(t, err)
	}

	stake(testAddress2, "1", "10", true)
	stake(testAddress2, "2", "20", false)
	stake(testAddress3, "1", "5", true)
	stake(testAddress3, "1", "5", false)
	stake(testAddress3, "2", "5", true)

	_, err := f.claims.Create(&models.CreateClaimRequest{
		UserAddress: testAddress2,
		DeluluID:    "1",
		Amount:      "25",
		TxHash:      testTxHash(99),
	})
	require.NoError(t, err)
}

func TestParseLeaderboardType(t *testing.T) {
	for _, valid := range []string{"stakers", "earners", "active", "creators"} {
		lbType, err := ParseLeaderboardType(valid)
		require.NoError(t, err)
		assert.Equal(t, LeaderboardType(valid), lbType)
	}

	_, err := ParseLeaderboardType("whales")
	assert.ErrorIs(t, err, ErrInvalidLeaderboardType)
}

func TestLeaderboardStakers(t *testing.T) {
	f := newStatsFixture(t)
	f.seed(t)

	entries, err := f.stats.GetLeaderboard(LeaderboardStakers, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, testAddress2, entries[0].WalletAddress)
	assert.True(t, entries[0].Total.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, testAddress3, entries[1].WalletAddress)
	assert.True(t, entries[1].Total.Equal(decimal.NewFromInt(15)))
}

func TestLeaderboardEarners(t *testing.T) {
	f := newStatsFixture(t)
	f.seed(t)

	entries, err := f.stats.GetLeaderboard(LeaderboardEarners, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, testAddress2, entries[0].WalletAddress)
	assert.True(t, entries[0].Total.Equal(decimal.NewFromInt(25)))
}

func TestLeaderboardActive(t *testing.T) {
	f := newStatsFixture(t)
	f.seed(t)

	entries, err := f.stats.GetLeaderboard(LeaderboardActive, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// testAddress3 has three stakes to testAddress2's two.
	assert.Equal(t, testAddress3, entries[0].WalletAddress)
	assert.Equal(t, int64(3), entries[0].Count)
	assert.Equal(t, int64(2), entries[1].Count)
}

func TestLeaderboardCreators(t *testing.T) {
	f := newStatsFixture(t)
	f.seed(t)

	entries, err := f.stats.GetLeaderboard(LeaderboardCreators, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, testAddress, entries[0].WalletAddress)
	assert.Equal(t, int64(2), entries[0].Count)
}

func TestLeaderboardTieBreaksByUserID(t *testing.T) {
	f := newStatsFixture(t)
	createTestDelulu(t, f.delulus, 1, testAddress)

	side := true
	for i, addr := range []string{testAddress3, testAddress2} {
		_, err := f.stakes.Create(&models.CreateStakeRequest{
			UserAddress: addr,
			DeluluID:    "1",
			Amount:      "10",
			Side:        &side,
			TxHash:      testTxHash(i + 1),
		})
		require.NoError(t, err)
	}

	entries, err := f.stats.GetLeaderboard(LeaderboardStakers, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// Equal totals rank by ascending user id: testAddress3 staked first
	// and was created first.
	assert.Equal(t, testAddress3, entries[0].WalletAddress)
	assert.Less(t, entries[0].UserID, entries[1].UserID)
}

func TestLeaderboardEmpty(t *testing.T) {
	f := newStatsFixture(t)

	for _, lbType := range []LeaderboardType{LeaderboardStakers, LeaderboardEarners, LeaderboardActive, LeaderboardCreators} {
		entries, err := f.stats.GetLeaderboard(lbType, 10)
		require.NoError(t, err, "type %s", lbType)
		assert.Empty(t, entries, "type %s", lbType)
	}
}

func TestPlatformStats(t *testing.T) {
	f := newStatsFixture(t)
	f.seed(t)

	stats, err := f.stats.GetPlatformStats()
	require.NoError(t, err)

	assert.True(t, stats.TotalBelieverStake.Equal(decimal.NewFromInt(20)), "believer: %s", stats.TotalBelieverStake)
	assert.True(t, stats.TotalDoubterStake.Equal(decimal.NewFromInt(25)), "doubter: %s", stats.TotalDoubterStake)
	assert.True(t, stats.TVL.Equal(decimal.NewFromInt(45)))
	// TVL equals the grand sum over the stakes table.
	assert.True(t, stats.TotalStakeVolume.Equal(stats.TVL))
	assert.Equal(t, int64(2), stats.TotalDelulus)
	assert.Equal(t, int64(5), stats.TotalStakes)
	assert.Equal(t, int64(3), stats.TotalUsers)
}

func TestPlatformStatsEmpty(t *testing.T) {
	f := newStatsFixture(t)

	stats, err := f.stats.GetPlatformStats()
	require.NoError(t, err)
	assert.True(t, stats.TVL.IsZero())
	assert.True(t, stats.TotalStakeVolume.IsZero())
	assert.Equal(t, int64(0), stats.TotalDelulus)
	assert.Equal(t, int64(0), stats.TotalUsers)
}

func TestUserStats(t *testing.T) {
	f := newStatsFixture(t)
	f.seed(t)

	stats, err := f.stats.GetUserStats(testAddress2)
	require.NoError(t, err)
	assert.True(t, stats.TotalStaked.Equal(decimal.NewFromInt(30)))
	assert.True(t, stats.TotalClaimed.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, int64(2), stats.TotalBets)
	assert.Equal(t, int64(2), stats.ActiveStakes) // both staking windows still open
	assert.Equal(t, int64(0), stats.TotalDelulus)

	creator, err := f.stats.GetUserStats(testAddress)
	require.NoError(t, err)
	assert.Equal(t, int64(2), creator.TotalDelulus)
	assert.True(t, creator.TotalStaked.IsZero())
}

func TestUserStatsUnknownAddressIsZero(t *testing.T) {
	f := newStatsFixture(t)

	stats, err := f.stats.GetUserStats("0x00000000000000000000000000000000000000ff")
	require.NoError(t, err)
	assert.True(t, stats.TotalStaked.IsZero())
	assert.True(t, stats.TotalClaimed.IsZero())
	assert.Equal(t, int64(0), stats.ActiveStakes)
	assert.Equal(t, int64(0), stats.TotalBets)

	_, err = f.stats.GetUserStats("not-an-address")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}
