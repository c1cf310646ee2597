package service

import (
	"context"
	"testing"

	"github.com/ikkim/flyer-backend/internal/app/model"
	"github.com/ikkim/flyer-backend/internal/app/repository"
	"github.com/ikkim/flyer-backend/internal/db"
	"github.com/ikkim/flyer-backend/internal/store"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://flyer.example.com"

var bg = context.Background()

func forEachBackend(t *testing.T, fn func(t *testing.T, repos *repository.Repositories)) {
	t.Run("local", func(t *testing.T) {
		fn(t, repository.New(store.NewLocalBackend(store.NewMemoryKV())))
	})
	t.Run("remote", func(t *testing.T) {
		testDB, err := db.SetupTestDB()
		require.NoError(t, err)
		t.Cleanup(func() { db.CleanupTestDB(testDB) })
		fn(t, repository.New(store.NewRemoteBackend(testDB)))
	})
}

func strPtr(s string) *string { return &s }

func submitRequest(t *testing.T, repos *repository.Repositories, shopName, managerName string) *model.Request {
	t.Helper()
	req, err := NewRequestService(repos).Submit(bg, SubmitRequestInput{
		ShopName:    shopName,
		ManagerName: managerName,
	})
	require.NoError(t, err)
	return req
}

func createVendor(t *testing.T, repos *repository.Repositories, shopName string) *model.Vendor {
	t.Helper()
	vendor := &model.Vendor{ShopName: shopName, ManagerName: "담당자"}
	require.NoError(t, repos.Vendors.Create(bg, vendor))
	return vendor
}
