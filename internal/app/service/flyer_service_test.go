package service

import (
	"testing"

	"github.com/ikkim/flyer-backend/internal/app/model"
	"github.com/ikkim/flyer-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlyerService_GetPublicFlyer(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *repository.Repositories) {
		vendor := createVendor(t, repos, "Public Shop")
		_, err := NewVendorService(repos, testBaseURL).SaveFlyer(bg, vendor.EditToken, VendorUpdate{}, []ProductInput{
			{Name: "first", OriginalPrice: 1000},
			{Name: "second", OriginalPrice: 2000, IsFeatured: true},
			{Name: "third", OriginalPrice: 3000},
			{Name: "fourth", OriginalPrice: 4000, IsFeatured: true},
		})
		require.NoError(t, err)

		svc := NewFlyerService(repos, nil)
		flyer, err := svc.GetPublicFlyer(bg, "public-shop", Viewer{IP: "203.0.113.7", UserAgent: "test-agent"})
		require.NoError(t, err)

		names := make([]string, len(flyer.Products))
		for i, p := range flyer.Products {
			names[i] = p.Name
		}
		assert.Equal(t, []string{"second", "fourth", "first", "third"}, names)
		assert.Equal(t, "Public Shop", flyer.Vendor.ShopName)

		count, err := repos.FlyerViews.CountByVendor(bg, vendor.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestFlyerService_HidesInactiveVendors(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *repository.Repositories) {
		svc := NewFlyerService(repos, nil)
		vendor := createVendor(t, repos, "Hidden Shop")

		for _, status := range []model.VendorStatus{model.VendorStatusHidden, model.VendorStatusBlocked} {
			_, err := repos.Vendors.UpdateStatus(bg, vendor.ID, status)
			require.NoError(t, err)

			_, err = svc.GetPublicFlyer(bg, vendor.Slug, Viewer{})
			assert.ErrorIs(t, err, ErrVendorNotFound, string(status))
		}

		_, err := svc.GetPublicFlyer(bg, "no-such-shop", Viewer{})
		assert.ErrorIs(t, err, ErrVendorNotFound)

		count, err := repos.FlyerViews.CountByVendor(bg, vendor.ID, nil)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestFlyerService_ViewStats(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *repository.Repositories) {
		svc := NewFlyerService(repos, nil)
		vendor := createVendor(t, repos, "Stats Shop")

		for i := 0; i < 3; i++ {
			_, err := svc.GetPublicFlyer(bg, vendor.Slug, Viewer{IP: "198.51.100.1"})
			require.NoError(t, err)
		}

		stats, err := svc.ViewStats(bg, vendor.ID, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(3), stats.Total)
		assert.Equal(t, defaultStatsDays, stats.Days)
		require.Len(t, stats.Daily, defaultStatsDays)
		assert.Equal(t, int64(3), stats.Daily[len(stats.Daily)-1].Count)

		capped, err := svc.ViewStats(bg, vendor.ID, 1000)
		require.NoError(t, err)
		assert.Equal(t, maxStatsDays, capped.Days)

		_, err = svc.ViewStats(bg, "missing", 7)
		assert.ErrorIs(t, err, ErrVendorNotFound)
	})
}

func TestHashIP(t *testing.T) {
	assert.Nil(t, hashIP(""))

	h := hashIP("203.0.113.7")
	require.NotNil(t, h)
	assert.Len(t, *h, 64)
	assert.NotContains(t, *h, "203.0.113.7")
	assert.Equal(t, *h, *hashIP("203.0.113.7"))
	assert.NotEqual(t, *h, *hashIP("203.0.113.8"))
}
