package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GLOBETROTTER_BACK-END/internal/dto"
	"GLOBETROTTER_BACK-END/internal/itinerary"
	"GLOBETROTTER_BACK-END/internal/models"
	"GLOBETROTTER_BACK-END/internal/store"
	"GLOBETROTTER_BACK-END/internal/store/storetest"
)

func newCommunity(t *testing.T) (*CommunityService, *storetest.Remote) {
	t.Helper()
	remote := storetest.NewRemote()
	s := NewCommunityService(remote)
	tick := fixedNow
	s.now = func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}
	return s, remote
}

func TestCreatePost(t *testing.T) {
	s, _ := newCommunity(t)
	who := alice
	who.AvatarURL = ptr("https://example.com/a.png")

	p, err := s.CreatePost(context.Background(), who, dto.CreatePostRequest{
		Content: "  Just back from Kyoto  ", TripName: ptr("Japan"), Location: ptr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "Just back from Kyoto", p.Content)
	assert.Equal(t, "Alice", p.UserName)
	assert.Equal(t, "https://example.com/a.png", p.UserAvatar)
	assert.Nil(t, p.Location)
	assert.NotNil(t, p.Comments)

	_, err = s.CreatePost(context.Background(), alice, dto.CreatePostRequest{Content: " "})
	assert.ErrorIs(t, err, itinerary.ErrValidation)
	_, err = s.CreatePost(context.Background(), alice, dto.CreatePostRequest{Content: strings.Repeat("x", maxPostLength+1)})
	assert.ErrorIs(t, err, itinerary.ErrValidation)
	_, err = s.CreatePost(context.Background(), alice, dto.CreatePostRequest{Content: "hi", Date: ptr("someday")})
	assert.ErrorIs(t, err, itinerary.ErrValidation)
}

func TestListPosts(t *testing.T) {
	s, _ := newCommunity(t)
	ctx := context.Background()
	for _, c := range []string{"Tip: buy a rail pass", "Where to eat in Lisbon?", "Sunset in Bali"} {
		_, err := s.CreatePost(ctx, alice, dto.CreatePostRequest{Content: c})
		require.NoError(t, err)
	}

	page, err := s.ListPosts(ctx, bob, "", "", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultPostsLimit, page.Limit)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Posts, 3)
	assert.Equal(t, "Sunset in Bali", page.Posts[0].Content)

	page, err = s.ListPosts(ctx, bob, models.PostFilterAll, "", 1000, 1)
	require.NoError(t, err)
	assert.Equal(t, MaxPostsLimit, page.Limit)
	require.Len(t, page.Posts, 2)
	assert.Equal(t, "Where to eat in Lisbon?", page.Posts[0].Content)

	page, err = s.ListPosts(ctx, bob, models.PostFilterQuestion, "", 10, 0)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)

	page, err = s.ListPosts(ctx, bob, models.PostFilterTips, "", 10, 0)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)

	page, err = s.ListPosts(ctx, bob, "", "bali", 10, 0)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)

	page, err = s.ListPosts(ctx, bob, "", "nothing matches", 10, 50)
	require.NoError(t, err)
	assert.NotNil(t, page.Posts)
	assert.Empty(t, page.Posts)

	_, err = s.ListPosts(ctx, bob, "popular", "", 10, 0)
	assert.ErrorIs(t, err, itinerary.ErrValidation)
}

func TestToggleLikeAndComment(t *testing.T) {
	s, _ := newCommunity(t)
	ctx := context.Background()
	p, err := s.CreatePost(ctx, alice, dto.CreatePostRequest{Content: "Hello"})
	require.NoError(t, err)

	likes, liked, err := s.ToggleLike(ctx, bob, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, likes)
	assert.True(t, liked)

	page, err := s.ListPosts(ctx, bob, "", "", 10, 0)
	require.NoError(t, err)
	assert.True(t, page.Posts[0].IsLiked)

	likes, liked, err = s.ToggleLike(ctx, bob, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, likes)
	assert.False(t, liked)

	_, _, err = s.ToggleLike(ctx, bob, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	c, err := s.AddComment(ctx, bob, p.ID, dto.CreateCommentRequest{Content: "Welcome!"})
	require.NoError(t, err)
	assert.Equal(t, "Bob", c.UserName)
	assert.Equal(t, p.ID, c.PostID)

	_, err = s.AddComment(ctx, bob, "missing", dto.CreateCommentRequest{Content: "Anyone?"})
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.AddComment(ctx, bob, p.ID, dto.CreateCommentRequest{Content: ""})
	assert.ErrorIs(t, err, itinerary.ErrValidation)
}

func TestCommunityUnavailable(t *testing.T) {
	s, remote := newCommunity(t)
	remote.Fail(store.ErrUnavailable)

	_, err := s.ListPosts(context.Background(), bob, "", "", 10, 0)
	assert.ErrorIs(t, err, store.ErrUnavailable)
}

func TestAnalytics(t *testing.T) {
	remote := storetest.NewRemote()
	s := NewAdminService(remote)
	ctx := context.Background()

	_, err := s.Analytics(ctx, alice)
	assert.ErrorIs(t, err, ErrForbidden)

	empty, err := s.Analytics(ctx, admin)
	require.NoError(t, err)
	assert.NotNil(t, empty.PopularCities)
	assert.NotNil(t, empty.PopularActivities)
	assert.NotNil(t, empty.TopUsers)

	remote.Cities["city-bali"] = models.City{ID: "city-bali", Name: "Bali", Country: "Indonesia"}
	for i, city := range []string{"city-kyoto", "city-kyoto", "city-kyoto", "city-bali"} {
		id := string(rune('a' + i))
		remote.Stops[id] = models.Stop{ID: id, CityID: city}
	}
	remote.Activities["x"] = models.Activity{ID: "x", Category: models.CategoryFood}
	remote.Activities["y"] = models.Activity{ID: "y", Category: models.CategoryFood}
	remote.Activities["z"] = models.Activity{ID: "z", Category: models.CategoryCulture}

	a, err := s.Analytics(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 4, a.TotalStops)
	require.Len(t, a.PopularCities, 2)
	assert.Equal(t, "Kyoto", a.PopularCities[0].Name)
	assert.Equal(t, 75.0, a.PopularCities[0].Percentage)
	assert.Equal(t, 25.0, a.PopularCities[1].Percentage)
	require.Len(t, a.PopularActivities, 2)
	assert.Equal(t, models.CategoryFood, a.PopularActivities[0].Category)
	assert.Equal(t, 66.7, a.PopularActivities[0].Percentage)
	assert.Equal(t, 33.3, a.PopularActivities[1].Percentage)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, percent(3, 0))
	assert.Equal(t, 100.0, percent(7, 7))
	assert.Equal(t, 14.3, percent(1, 7))
}

func TestProfiles(t *testing.T) {
	remote := storetest.NewRemote()
	remote.Profiles[alice.ID] = models.Profile{ID: alice.ID, Email: alice.Email, Language: "en", Role: models.RoleUser}
	s := NewProfileService(remote)
	ctx := context.Background()

	p, err := s.GetProfile(ctx, demo)
	require.NoError(t, err)
	assert.Equal(t, "Demo User", *p.FullName)
	assert.Equal(t, models.RoleUser, p.Role)
	p, err = s.GetProfile(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, p.Role)
	assert.Zero(t, remote.CallCount())

	_, err = s.UpdateProfile(ctx, demo, dto.ProfileUpdateRequest{FullName: ptr("Someone")})
	assert.ErrorIs(t, err, ErrForbidden)

	p, err = s.UpdateProfile(ctx, alice, dto.ProfileUpdateRequest{FullName: ptr("Alice Liddell"), Language: ptr(" FR ")})
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", *p.FullName)
	assert.Equal(t, "fr", p.Language)

	p, err = s.UpdateProfile(ctx, alice, dto.ProfileUpdateRequest{FullName: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, p.FullName)

	_, err = s.UpdateProfile(ctx, alice, dto.ProfileUpdateRequest{})
	assert.ErrorIs(t, err, itinerary.ErrValidation)
	_, err = s.UpdateProfile(ctx, alice, dto.ProfileUpdateRequest{Language: ptr("x")})
	assert.ErrorIs(t, err, itinerary.ErrValidation)

	_, err = s.GetProfile(ctx, bob)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
