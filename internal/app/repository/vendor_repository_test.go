package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ikkim/flyer-backend/internal/app/model"
	"github.com/ikkim/flyer-backend/internal/store"
	"github.com/ikkim/flyer-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createVendor(t *testing.T, repos *Repositories, shopName string) *model.Vendor {
	t.Helper()
	v := &model.Vendor{ShopName: shopName, ManagerName: "Kim", KakaoURL: "https://open.kakao.com/x"}
	require.NoError(t, repos.Vendors.Create(bg, v))
	return v
}

func TestVendorRepository_CreateAssignsSlugAndToken(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *Repositories) {
		v := createVendor(t, repos, "MyShop")

		assert.NotEmpty(t, v.ID)
		assert.Equal(t, "myshop", v.Slug)
		assert.Len(t, v.EditToken, util.EditTokenLength)
		assert.Equal(t, model.VendorStatusActive, v.Status)
	})
}

func TestVendorRepository_SlugConflicts(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *Repositories) {
		first := createVendor(t, repos, "MyShop")
		second := createVendor(t, repos, "MyShop")
		third := createVendor(t, repos, "my shop")
		fourth := createVendor(t, repos, "MyShop")

		assert.Equal(t, "myshop", first.Slug)
		assert.Equal(t, "myshop-1", second.Slug)
		assert.Equal(t, "my-shop", third.Slug)
		assert.Equal(t, "myshop-2", fourth.Slug)
		assert.NotEqual(t, first.EditToken, second.EditToken)

		slugs, err := repos.Vendors.ListSlugs(bg, "myshop")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"myshop", "myshop-1", "myshop-2"}, slugs)
	})
}

func TestVendorRepository_KoreanNameGetsRandomSlug(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *Repositories) {
		v := createVendor(t, repos, "롯데백화점 본점")
		assert.Regexp(t, `^[a-z0-9]{8}$`, v.Slug)
	})
}

func TestVendorRepository_Lookups(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *Repositories) {
		v := createVendor(t, repos, "Gold Star")

		bySlug, err := repos.Vendors.GetBySlug(bg, "gold-star")
		require.NoError(t, err)
		require.NotNil(t, bySlug)
		assert.Equal(t, v.ID, bySlug.ID)

		byToken, err := repos.Vendors.GetByEditToken(bg, v.EditToken)
		require.NoError(t, err)
		require.NotNil(t, byToken)
		assert.Equal(t, v.ID, byToken.ID)

		for _, lookup := range []func() (*model.Vendor, error){
			func() (*model.Vendor, error) { return repos.Vendors.GetBySlug(bg, "nope") },
			func() (*model.Vendor, error) { return repos.Vendors.GetByEditToken(bg, "nope") },
			func() (*model.Vendor, error) { return repos.Vendors.GetByEditToken(bg, "") },
			func() (*model.Vendor, error) { return repos.Vendors.GetByID(bg, "nope") },
		} {
			got, err := lookup()
			require.NoError(t, err)
			assert.Nil(t, got)
		}
	})
}

func TestVendorRepository_UpdateKeepsSlug(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *Repositories) {
		v := createVendor(t, repos, "MyShop")

		updated, err := repos.Vendors.Update(bg, v.ID, func(v *model.Vendor) {
			v.ShopName = "Renamed"
			v.Slug = "hijacked"
		})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "Renamed", updated.ShopName)
		assert.Equal(t, "myshop", updated.Slug)

		got, err := repos.Vendors.GetBySlug(bg, "myshop")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Renamed", got.ShopName)
	})
}

func TestVendorRepository_StatusAndToken(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *Repositories) {
		v := createVendor(t, repos, "MyShop")
		oldToken := v.EditToken

		hidden, err := repos.Vendors.UpdateStatus(bg, v.ID, model.VendorStatusHidden)
		require.NoError(t, err)
		assert.Equal(t, model.VendorStatusHidden, hidden.Status)

		active, err := repos.Vendors.GetByStatus(bg, model.VendorStatusActive)
		require.NoError(t, err)
		assert.Empty(t, active)

		regenerated, err := repos.Vendors.RegenerateEditToken(bg, v.ID)
		require.NoError(t, err)
		assert.NotEqual(t, oldToken, regenerated.EditToken)

		old, err := repos.Vendors.GetByEditToken(bg, oldToken)
		require.NoError(t, err)
		assert.Nil(t, old)

		missing, err := repos.Vendors.RegenerateEditToken(bg, "missing")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}

func TestVendorRepository_DeleteCascades(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *Repositories) {
		v := createVendor(t, repos, "MyShop")
		other := createVendor(t, repos, "Other")

		_, err := repos.Products.BulkSaveForVendor(bg, v.ID, []model.Product{{Name: "a", OriginalPrice: 1000}})
		require.NoError(t, err)
		_, err = repos.Products.BulkSaveForVendor(bg, other.ID, []model.Product{{Name: "b", OriginalPrice: 1000}})
		require.NoError(t, err)
		require.NoError(t, repos.FlyerViews.Record(bg, &model.FlyerView{VendorID: v.ID}))

		deleted, err := repos.Vendors.Delete(bg, v.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		products, err := repos.Products.GetByVendorID(bg, v.ID)
		require.NoError(t, err)
		assert.Empty(t, products)

		views, err := repos.FlyerViews.CountByVendor(bg, v.ID, nil)
		require.NoError(t, err)
		assert.Zero(t, views)

		remaining, err := repos.Products.GetByVendorID(bg, other.ID)
		require.NoError(t, err)
		assert.Len(t, remaining, 1)

		deleted, err = repos.Vendors.Delete(bg, v.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestVendorRepository_LongNameConflictsStayValid(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *Repositories) {
		name := strings.Repeat("a", 60)
		want := []string{
			strings.Repeat("a", 50),
			strings.Repeat("a", 48) + "-1",
			strings.Repeat("a", 48) + "-2",
		}
		for _, slug := range want {
			v := createVendor(t, repos, name)
			assert.Equal(t, slug, v.Slug)
			assert.True(t, util.ValidateSlug(v.Slug).Valid, "slug %q len %d", v.Slug, len(v.Slug))
		}
	})
}

// racingVendorTable fails the first fail inserts with err. When rival is set,
// it is stored just before the next slug lookup, as if another writer had
// committed it between attempts.
type racingVendorTable struct {
	store.Table[model.Vendor]
	fail     int
	err      error
	rival    *model.Vendor
	rivalDue bool
	inserted []model.Vendor
}

func (r *racingVendorTable) Find(ctx context.Context, q store.Query) ([]model.Vendor, error) {
	if r.rivalDue {
		r.rivalDue = false
		if err := r.Table.Insert(ctx, r.rival); err != nil {
			return nil, err
		}
	}
	return r.Table.Find(ctx, q)
}

func (r *racingVendorTable) Insert(ctx context.Context, recs ...*model.Vendor) error {
	for _, v := range recs {
		r.inserted = append(r.inserted, *v)
	}
	if r.fail > 0 {
		r.fail--
		r.rivalDue = r.rival != nil
		return r.err
	}
	return r.Table.Insert(ctx, recs...)
}

func rivalVendor(slug string) *model.Vendor {
	ts := time.Now().UTC()
	return &model.Vendor{
		ID:          uuid.NewString(),
		Slug:        slug,
		ShopName:    "Rival",
		ManagerName: "Lee",
		EditToken:   strings.Repeat("r", util.EditTokenLength),
		Status:      model.VendorStatusActive,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

func TestVendorRepository_CreateRetriesDuplicates(t *testing.T) {
	tests := []struct {
		name      string
		fail      int
		err       error
		rival     bool
		wantErr   bool
		attempts  int
		wantSlugs []string
	}{
		{"rival takes the slug", 1, store.ErrDuplicate, true, false, 2, []string{"myshop", "myshop-1"}},
		{"gorm duplicate key", 1, gorm.ErrDuplicatedKey, false, false, 2, []string{"myshop", "myshop"}},
		{"gives up after max attempts", 5, store.ErrDuplicate, false, true, maxCreateAttempts, []string{"myshop", "myshop", "myshop"}},
		{"other errors are not retried", 5, errors.New("disk full"), false, true, 1, []string{"myshop"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forEachBackend(t, func(t *testing.T, repos *Repositories) {
				table := &racingVendorTable{
					Table: store.NewTable[model.Vendor](repos.backend, VendorCollection),
					fail:  tt.fail,
					err:   tt.err,
				}
				if tt.rival {
					table.rival = rivalVendor("myshop")
				}
				vendors := NewVendorRepository(repos.backend).(*vendorRepository)
				vendors.table = table

				v := &model.Vendor{ShopName: "MyShop", ManagerName: "Kim"}
				err := vendors.Create(bg, v)

				require.Len(t, table.inserted, tt.attempts)
				slugs := make([]string, len(table.inserted))
				tokens := map[string]struct{}{}
				for i, rec := range table.inserted {
					slugs[i] = rec.Slug
					tokens[rec.EditToken] = struct{}{}
				}
				assert.Equal(t, tt.wantSlugs, slugs)
				assert.Len(t, tokens, tt.attempts, "every attempt draws a fresh edit token")

				if tt.wantErr {
					require.Error(t, err)
					assert.ErrorIs(t, err, tt.err)
					stored, err := repos.Vendors.GetAll(bg)
					require.NoError(t, err)
					assert.Empty(t, stored)
					return
				}
				require.NoError(t, err)
				last := table.inserted[len(table.inserted)-1]
				assert.Equal(t, last.Slug, v.Slug)
				assert.Equal(t, last.EditToken, v.EditToken)

				stored, err := repos.Vendors.GetBySlug(bg, v.Slug)
				require.NoError(t, err)
				require.NotNil(t, stored)
				assert.Equal(t, v.ID, stored.ID)
			})
		})
	}
}
