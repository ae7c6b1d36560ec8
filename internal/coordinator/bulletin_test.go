package coordinator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serac-weather/serac/internal/avalanche"
	"github.com/serac-weather/serac/internal/coordinator"
	"github.com/serac-weather/serac/internal/location"
	"github.com/serac-weather/serac/internal/provider"
	"github.com/serac-weather/serac/internal/weather"
)

type fakeBulletinSource struct {
	bulletin avalanche.Bulletin
	err      error
	calls    int
}

func (f *fakeBulletinSource) FetchBulletin(context.Context) (avalanche.Bulletin, error) {
	f.calls++
	if f.err != nil {
		return avalanche.Bulletin{}, f.err
	}
	return f.bulletin, nil
}

func newBulletinCoordinator(source *fakeBulletinSource) *coordinator.BulletinCoordinator {
	massif, _ := location.MassifByID(3)
	return coordinator.NewBulletinCoordinator(coordinator.BulletinCoordinatorConfig{
		Massif: massif,
		Source: source,
		Retry:  fastRetry,
		Logger: zerolog.Nop(),
	})
}

func TestBulletinRefresh(t *testing.T) {
	source := &fakeBulletinSource{
		bulletin: avalanche.Bulletin{
			MassifID:   3,
			MassifName: "MONT-BLANC",
			HasData:    true,
			RiskToday:  weather.Int(3),
		},
	}
	c := newBulletinCoordinator(source)

	_, ok := c.Bulletin()
	assert.False(t, ok)

	require.NoError(t, c.Refresh(context.Background()))

	bulletin, ok := c.Bulletin()
	require.True(t, ok)
	assert.True(t, bulletin.HasData)
	assert.Equal(t, 3, *bulletin.RiskToday)
	assert.NoError(t, c.LastError())
	assert.False(t, c.LastSuccess().IsZero())
}

func TestBulletinRefresh_NoDataIsSuccess(t *testing.T) {
	source := &fakeBulletinSource{
		bulletin: avalanche.Bulletin{MassifID: 3, HasData: false},
	}
	c := newBulletinCoordinator(source)

	require.NoError(t, c.Refresh(context.Background()))

	bulletin, ok := c.Bulletin()
	require.True(t, ok)
	assert.False(t, bulletin.HasData)
	assert.NoError(t, c.LastError())
}

func TestBulletinRefresh_FailureRetainsPreviousBulletin(t *testing.T) {
	source := &fakeBulletinSource{
		bulletin: avalanche.Bulletin{MassifID: 3, HasData: true, RiskToday: weather.Int(2)},
	}
	c := newBulletinCoordinator(source)
	require.NoError(t, c.Refresh(context.Background()))

	source.err = provider.ClassifyStatus("meteofrance-bra", 403)
	require.Error(t, c.Refresh(context.Background()))

	bulletin, ok := c.Bulletin()
	require.True(t, ok)
	assert.Equal(t, 2, *bulletin.RiskToday)
	assert.Error(t, c.LastError())
}

func TestBulletinRefresh_AuthFailureNotRetried(t *testing.T) {
	source := &fakeBulletinSource{err: provider.ClassifyStatus("meteofrance-bra", 401)}
	c := newBulletinCoordinator(source)

	require.Error(t, c.Refresh(context.Background()))
	assert.Equal(t, 1, source.calls)
}

func TestBulletinRefresh_NetworkFailureRetried(t *testing.T) {
	source := &fakeBulletinSource{err: provider.NewNetworkError("meteofrance-bra", errors.New("down"))}
	c := newBulletinCoordinator(source)

	require.Error(t, c.Refresh(context.Background()))
	// MaxRetries=1 means two tries.
	assert.Equal(t, 2, source.calls)
}
