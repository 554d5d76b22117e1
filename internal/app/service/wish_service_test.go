package service

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"wishlist_api/internal/common"
	"wishlist_api/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWishRepo honors the repository scope contract: a non-nil owner hides
// every other owner's rows.
type fakeWishRepo struct {
	seq    int64
	wishes map[int64]*model.Wish
}

func newFakeWishRepo() *fakeWishRepo {
	return &fakeWishRepo{wishes: map[int64]*model.Wish{}}
}

func (r *fakeWishRepo) Create(_ context.Context, wish *model.Wish) error {
	r.seq++
	wish.ID = r.seq
	wish.CreatedAt = time.Now()
	wish.UpdatedAt = wish.CreatedAt
	copied := *wish
	r.wishes[wish.ID] = &copied
	return nil
}

func (r *fakeWishRepo) FindByID(_ context.Context, id int64, owner *int64) (*model.Wish, error) {
	wish, ok := r.wishes[id]
	if !ok || (owner != nil && wish.OwnerID != *owner) {
		return nil, common.ErrNotFound
	}
	copied := *wish
	return &copied, nil
}

func (r *fakeWishRepo) List(_ context.Context, owner *int64, limit, offset int, priceFilter *float64) ([]model.Wish, int, error) {
	matched := []model.Wish{}
	for _, wish := range r.wishes {
		if owner != nil && wish.OwnerID != *owner {
			continue
		}
		if priceFilter != nil && (wish.PriceEstimate == nil || *wish.PriceEstimate > *priceFilter) {
			continue
		}
		matched = append(matched, *wish)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	if offset > len(matched) {
		offset = len(matched)
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (r *fakeWishRepo) Update(_ context.Context, wish *model.Wish, owner *int64) error {
	existing, ok := r.wishes[wish.ID]
	if !ok || (owner != nil && existing.OwnerID != *owner) {
		return common.ErrNotFound
	}
	copied := *wish
	copied.OwnerID = existing.OwnerID
	r.wishes[wish.ID] = &copied
	return nil
}

func (r *fakeWishRepo) Delete(_ context.Context, id int64, owner *int64) error {
	existing, ok := r.wishes[id]
	if !ok || (owner != nil && existing.OwnerID != *owner) {
		return common.ErrNotFound
	}
	delete(r.wishes, id)
	return nil
}

var (
	userOne = model.Principal{UserID: 1, Role: model.RoleUser}
	userTwo = model.Principal{UserID: 2, Role: model.RoleUser}
	admin   = model.Principal{UserID: 3, Role: model.RoleAdmin}
)

func price(v float64) *float64 { return &v }

func TestWishCreate_OwnerForcedFromPrincipal(t *testing.T) {
	t.Parallel()

	svc := NewWishService(newFakeWishRepo())
	wish, err := svc.Create(context.Background(), userOne, CreateWishRequest{Title: "Bike"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), wish.OwnerID)
}

func TestWishCreate_ValidationBoundaries(t *testing.T) {
	t.Parallel()

	svc := NewWishService(newFakeWishRepo())

	// title of exactly 200 and price 0 are the accepted edges
	wish, err := svc.Create(context.Background(), userOne, CreateWishRequest{
		Title:         strings.Repeat("t", 200),
		PriceEstimate: price(0),
	})
	require.NoError(t, err)
	assert.Equal(t, float64(0), *wish.PriceEstimate)

	_, err = svc.Create(context.Background(), userOne, CreateWishRequest{Title: strings.Repeat("t", 201)})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Create(context.Background(), userOne, CreateWishRequest{Title: ""})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Create(context.Background(), userOne, CreateWishRequest{Title: "Bike", PriceEstimate: price(-0.01)})
	assert.ErrorIs(t, err, common.ErrValidation)

	link := strings.Repeat("l", 501)
	_, err = svc.Create(context.Background(), userOne, CreateWishRequest{Title: "Bike", Link: &link})
	assert.ErrorIs(t, err, common.ErrValidation)

	notes := strings.Repeat("n", 1001)
	_, err = svc.Create(context.Background(), userOne, CreateWishRequest{Title: "Bike", Notes: &notes})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestWishCreate_LimitsCountCharactersNotBytes(t *testing.T) {
	t.Parallel()

	svc := NewWishService(newFakeWishRepo())

	// 200 two-byte runes: 400 bytes, but exactly at the character limit.
	wish, err := svc.Create(context.Background(), userOne, CreateWishRequest{Title: strings.Repeat("é", 200)})
	require.NoError(t, err)
	assert.Equal(t, 200, len([]rune(wish.Title)))

	_, err = svc.Create(context.Background(), userOne, CreateWishRequest{Title: strings.Repeat("é", 201)})
	assert.ErrorIs(t, err, common.ErrValidation)

	notes := strings.Repeat("ü", 1000)
	_, err = svc.Create(context.Background(), userOne, CreateWishRequest{Title: "Bike", Notes: &notes})
	assert.NoError(t, err)

	link := strings.Repeat("ü", 500)
	_, err = svc.Create(context.Background(), userOne, CreateWishRequest{Title: "Bike", Link: &link})
	assert.NoError(t, err)

	_, err = svc.Update(context.Background(), userOne, 1, UpdateWishRequest{Title: strPtr(strings.Repeat("é", 201))})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestWishGet_CrossOwnerHiddenAsNotFound(t *testing.T) {
	t.Parallel()

	svc := NewWishService(newFakeWishRepo())
	wish, err := svc.Create(context.Background(), userOne, CreateWishRequest{Title: "Bike"})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), userTwo, wish.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	got, err := svc.Get(context.Background(), admin, wish.ID)
	require.NoError(t, err)
	assert.Equal(t, wish.ID, got.ID)
}

func TestWishUpdate_ScopeAndPatch(t *testing.T) {
	t.Parallel()

	svc := NewWishService(newFakeWishRepo())
	wish, err := svc.Create(context.Background(), userOne, CreateWishRequest{Title: "Bike", PriceEstimate: price(100)})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), userTwo, wish.ID, UpdateWishRequest{Title: strPtr("Stolen")})
	assert.ErrorIs(t, err, common.ErrNotFound)

	updated, err := svc.Update(context.Background(), userOne, wish.ID, UpdateWishRequest{Title: strPtr("Red Bike")})
	require.NoError(t, err)
	assert.Equal(t, "Red Bike", updated.Title)
	assert.Equal(t, float64(100), *updated.PriceEstimate) // untouched field survives

	adminPatch, err := svc.Update(context.Background(), admin, wish.ID, UpdateWishRequest{Notes: strPtr("approved")})
	require.NoError(t, err)
	assert.Equal(t, "approved", *adminPatch.Notes)
}

func TestWishDelete_Scope(t *testing.T) {
	t.Parallel()

	svc := NewWishService(newFakeWishRepo())
	wish, err := svc.Create(context.Background(), userOne, CreateWishRequest{Title: "Bike"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), userTwo, wish.ID), common.ErrNotFound)
	assert.NoError(t, svc.Delete(context.Background(), userOne, wish.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), userOne, wish.ID), common.ErrNotFound)
}

func TestWishList_ScopedAndIdempotent(t *testing.T) {
	t.Parallel()

	svc := NewWishService(newFakeWishRepo())
	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), userOne, CreateWishRequest{Title: "Mine", PriceEstimate: price(10)})
		require.NoError(t, err)
	}
	_, err := svc.Create(context.Background(), userTwo, CreateWishRequest{Title: "Theirs", PriceEstimate: price(500)})
	require.NoError(t, err)

	query := ListWishesQuery{Limit: 10, Offset: 0}

	mine, err := svc.List(context.Background(), userOne, query)
	require.NoError(t, err)
	assert.Equal(t, 3, mine.Total)
	for _, item := range mine.Items {
		assert.Equal(t, int64(1), item.OwnerID)
	}

	again, err := svc.List(context.Background(), userOne, query)
	require.NoError(t, err)
	assert.Equal(t, mine, again)

	everything, err := svc.List(context.Background(), admin, query)
	require.NoError(t, err)
	assert.Equal(t, 4, everything.Total)

	cheap, err := svc.List(context.Background(), admin, ListWishesQuery{Limit: 10, PriceFilter: price(100)})
	require.NoError(t, err)
	assert.Equal(t, 3, cheap.Total)
}

func TestWishList_QueryValidation(t *testing.T) {
	t.Parallel()

	svc := NewWishService(newFakeWishRepo())
	cases := []ListWishesQuery{
		{Limit: 0},
		{Limit: 101},
		{Limit: 10, Offset: -1},
		{Limit: 10, PriceFilter: price(-1)},
	}
	for _, query := range cases {
		_, err := svc.List(context.Background(), userOne, query)
		assert.ErrorIs(t, err, common.ErrValidation, "query %+v", query)
	}
}

func strPtr(s string) *string { return &s }
