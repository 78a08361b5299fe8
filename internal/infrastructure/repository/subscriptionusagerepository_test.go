package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/infrastructure/persistence/models"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

func setupUsageDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(&models.SubscriptionUsageModel{}))
	return database
}

func usagePeriod() (time.Time, time.Time) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func TestCheckAndIncrement_SequentialExhaustion(t *testing.T) {
	repo := NewSubscriptionUsageRepository(setupUsageDB(t), logger.NewLogger())
	ctx := context.Background()
	start, end := usagePeriod()

	for want := int64(1); want <= 3; want++ {
		count, err := repo.CheckAndIncrement(ctx, 1, "contacts", start, end, 3)
		require.NoError(t, err)
		assert.Equal(t, want, count)
	}

	_, err := repo.CheckAndIncrement(ctx, 1, "contacts", start, end, 3)
	assert.ErrorIs(t, err, subscription.ErrQuotaExceeded)

	usage, err := repo.Get(ctx, 1, "contacts", start)
	require.NoError(t, err)
	require.NotNil(t, usage)
	assert.Equal(t, int64(3), usage.UsageCount())
}

func TestCheckAndIncrement_ZeroLimitIsUnlimited(t *testing.T) {
	repo := NewSubscriptionUsageRepository(setupUsageDB(t), logger.NewLogger())
	ctx := context.Background()
	start, end := usagePeriod()

	var last int64
	for i := 0; i < 10; i++ {
		count, err := repo.CheckAndIncrement(ctx, 1, "contacts", start, end, 0)
		require.NoError(t, err)
		last = count
	}
	assert.Equal(t, int64(10), last)
}

func TestCheckAndIncrement_PeriodsAreIndependent(t *testing.T) {
	repo := NewSubscriptionUsageRepository(setupUsageDB(t), logger.NewLogger())
	ctx := context.Background()
	start, end := usagePeriod()

	count, err := repo.CheckAndIncrement(ctx, 1, "contacts", start, end, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	_, err = repo.CheckAndIncrement(ctx, 1, "contacts", start, end, 1)
	require.ErrorIs(t, err, subscription.ErrQuotaExceeded)

	nextStart, nextEnd := end, end.AddDate(0, 1, 0)
	count, err = repo.CheckAndIncrement(ctx, 1, "contacts", nextStart, nextEnd, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCheckAndIncrement_FeaturesAreIndependent(t *testing.T) {
	repo := NewSubscriptionUsageRepository(setupUsageDB(t), logger.NewLogger())
	ctx := context.Background()
	start, end := usagePeriod()

	_, err := repo.CheckAndIncrement(ctx, 1, "contacts", start, end, 1)
	require.NoError(t, err)

	count, err := repo.CheckAndIncrement(ctx, 1, "campaigns", start, end, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDecrement_FloorsAtZero(t *testing.T) {
	repo := NewSubscriptionUsageRepository(setupUsageDB(t), logger.NewLogger())
	ctx := context.Background()
	start, end := usagePeriod()

	// No row yet: releasing is a no-op, not an error.
	require.NoError(t, repo.Decrement(ctx, 1, "contacts", start))

	_, err := repo.CheckAndIncrement(ctx, 1, "contacts", start, end, 5)
	require.NoError(t, err)
	require.NoError(t, repo.Decrement(ctx, 1, "contacts", start))
	require.NoError(t, repo.Decrement(ctx, 1, "contacts", start))

	usage, err := repo.Get(ctx, 1, "contacts", start)
	require.NoError(t, err)
	require.NotNil(t, usage)
	assert.Zero(t, usage.UsageCount())
}

func TestListBySubscription_OrderedByFeature(t *testing.T) {
	repo := NewSubscriptionUsageRepository(setupUsageDB(t), logger.NewLogger())
	ctx := context.Background()
	start, end := usagePeriod()

	for _, code := range []string{"deals", "contacts", "campaigns"} {
		_, err := repo.CheckAndIncrement(ctx, 1, code, start, end, 0)
		require.NoError(t, err)
	}

	usages, err := repo.ListBySubscription(ctx, 1, start)
	require.NoError(t, err)
	require.Len(t, usages, 3)
	assert.Equal(t, "campaigns", usages[0].FeatureCode())
	assert.Equal(t, "contacts", usages[1].FeatureCode())
	assert.Equal(t, "deals", usages[2].FeatureCode())
}
