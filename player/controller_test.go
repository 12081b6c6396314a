package player

import (
	"math/rand"
	"testing"

	"Lumen/catalog"
	"Lumen/flags"
	"Lumen/playlist"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRandom int

func (f fixedRandom) Intn(n int) int {
	return int(f) % n
}

func newTestController(t *testing.T) *Controller {
	t.Helper()
	c, err := catalog.New([]catalog.Video{
		{Title: "Funny Dogs", ID: "dog1", Tags: []string{"dog", "animal"}},
		{Title: "Amazing Cats", ID: "cat1", Tags: []string{"cat", "animal"}},
		{Title: "another cat video", ID: "cat2", Tags: []string{"cat"}},
		{Title: "Video about nothing", ID: "nothing", Tags: []string{}},
	})
	require.NoError(t, err)
	return New(c, fixedRandom(0))
}

func titles(videos []*catalog.Video) []string {
	var out []string
	for _, v := range videos {
		out = append(out, v.Title)
	}
	return out
}

func TestCount(t *testing.T) {
	c := newTestController(t)
	assert.Equal(t, 4, c.Count())
}

func TestListAll_SortedWithFlags(t *testing.T) {
	c := newTestController(t)
	_, err := c.Flag("cat1", "nudity")
	require.NoError(t, err)

	entries := c.ListAll()
	require.Len(t, entries, 4)

	var got []string
	for _, e := range entries {
		got = append(got, e.Details())
	}
	assert.Equal(t, []string{
		"Amazing Cats (cat1) [cat animal] - FLAGGED (reason: nudity)",
		"another cat video (cat2) [cat]",
		"Funny Dogs (dog1) [dog animal]",
		"Video about nothing (nothing) []",
	}, got)
}

func TestPlay(t *testing.T) {
	c := newTestController(t)

	res, err := c.Play("cat1")
	require.NoError(t, err)
	assert.Nil(t, res.Stopped)
	assert.Equal(t, "cat1", res.Playing.ID)

	pb, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "cat1", pb.Video.ID)
	assert.False(t, pb.Paused)
}

func TestPlay_StopsPrevious(t *testing.T) {
	c := newTestController(t)
	c.Play("cat1")
	c.Pause()

	res, err := c.Play("dog1")
	require.NoError(t, err)
	require.NotNil(t, res.Stopped)
	assert.Equal(t, "cat1", res.Stopped.ID)
	assert.Equal(t, "dog1", res.Playing.ID)

	pb, _ := c.Current()
	assert.Equal(t, "dog1", pb.Video.ID)
	assert.False(t, pb.Paused)
}

func TestPlay_NoSuchVideo(t *testing.T) {
	c := newTestController(t)
	c.Play("cat1")

	_, err := c.Play("missing")
	assert.ErrorIs(t, err, ErrNoSuchVideo)

	pb, _ := c.Current()
	assert.Equal(t, "cat1", pb.Video.ID)
}

func TestPlay_Flagged(t *testing.T) {
	c := newTestController(t)
	c.Play("dog1")
	c.Flag("cat1", "nudity")

	_, err := c.Play("cat1")
	assert.ErrorIs(t, err, ErrFlagged)

	var flagged *FlaggedError
	require.ErrorAs(t, err, &flagged)
	assert.Equal(t, "nudity", flagged.Reason)

	pb, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "dog1", pb.Video.ID)
}

func TestStop(t *testing.T) {
	c := newTestController(t)

	_, err := c.Stop()
	assert.ErrorIs(t, err, ErrNothingSelected)

	c.Play("cat1")
	stopped, err := c.Stop()
	require.NoError(t, err)
	assert.Equal(t, "cat1", stopped.ID)

	_, ok := c.Current()
	assert.False(t, ok)
}

func TestPlayRandom_SkipsFlagged(t *testing.T) {
	c := newTestController(t)
	c.Flag("dog1", "")

	res, err := c.PlayRandom()
	require.NoError(t, err)
	assert.Equal(t, "cat1", res.Playing.ID)
}

func TestPlayRandom_Seeded(t *testing.T) {
	cat, err := catalog.New([]catalog.Video{{Title: "A", ID: "a"}, {Title: "B", ID: "b"}, {Title: "C", ID: "c"}})
	require.NoError(t, err)

	first := New(cat, rand.New(rand.NewSource(42)))
	second := New(cat, rand.New(rand.NewSource(42)))
	for i := 0; i < 5; i++ {
		a, err := first.PlayRandom()
		require.NoError(t, err)
		b, err := second.PlayRandom()
		require.NoError(t, err)
		assert.Equal(t, a.Playing.ID, b.Playing.ID)
	}
}

func TestPlayRandom_AllFlagged(t *testing.T) {
	c := newTestController(t)
	for _, id := range []string{"dog1", "cat1", "cat2", "nothing"} {
		_, err := c.Flag(id, "")
		require.NoError(t, err)
	}

	_, err := c.PlayRandom()
	assert.ErrorIs(t, err, ErrNoneAvailable)
}

func TestPause(t *testing.T) {
	c := newTestController(t)

	_, err := c.Pause()
	assert.ErrorIs(t, err, ErrNothingSelected)

	c.Play("cat1")
	res, err := c.Pause()
	require.NoError(t, err)
	assert.False(t, res.AlreadyPaused)
	assert.Equal(t, "cat1", res.Video.ID)

	res, err = c.Pause()
	require.NoError(t, err)
	assert.True(t, res.AlreadyPaused)

	pb, _ := c.Current()
	assert.True(t, pb.Paused)
}

func TestResume(t *testing.T) {
	c := newTestController(t)

	_, err := c.Resume()
	assert.ErrorIs(t, err, ErrNothingSelected)

	c.Play("cat1")
	_, err = c.Resume()
	assert.ErrorIs(t, err, ErrNotPaused)

	c.Pause()
	v, err := c.Resume()
	require.NoError(t, err)
	assert.Equal(t, "cat1", v.ID)

	pb, _ := c.Current()
	assert.False(t, pb.Paused)
}

func TestCreatePlaylist_CaseInsensitive(t *testing.T) {
	c := newTestController(t)

	_, err := c.CreatePlaylist("Foo")
	require.NoError(t, err)

	_, err = c.CreatePlaylist("foo")
	assert.ErrorIs(t, err, ErrAlreadyExists)

	names, err := c.AllPlaylists()
	require.NoError(t, err)
	assert.Equal(t, []string{"Foo"}, names)
}

func TestAllPlaylists_None(t *testing.T) {
	c := newTestController(t)

	_, err := c.AllPlaylists()
	assert.ErrorIs(t, err, ErrNoPlaylists)
}

func TestAddToPlaylist_FailureOrder(t *testing.T) {
	c := newTestController(t)

	_, err := c.AddToPlaylist("mix", "missing")
	assert.ErrorIs(t, err, ErrNoSuchPlaylist)

	c.CreatePlaylist("mix")
	_, err = c.AddToPlaylist("MIX", "missing")
	assert.ErrorIs(t, err, ErrNoSuchVideo)

	c.Flag("cat1", "spam")
	_, err = c.AddToPlaylist("mix", "cat1")
	assert.ErrorIs(t, err, ErrFlagged)

	view, err := c.ShowPlaylist("mix")
	require.NoError(t, err)
	assert.Empty(t, view.Entries)
}

func TestAddToPlaylist_Duplicate(t *testing.T) {
	c := newTestController(t)
	c.CreatePlaylist("mix")

	_, err := c.AddToPlaylist("mix", "dog1")
	require.NoError(t, err)

	_, err = c.AddToPlaylist("mix", "dog1")
	assert.ErrorIs(t, err, ErrAlreadyInPlaylist)

	view, _ := c.ShowPlaylist("mix")
	assert.Len(t, view.Entries, 1)
}

func TestShowPlaylist_OrderAndFlags(t *testing.T) {
	c := newTestController(t)
	c.CreatePlaylist("My_Mix")
	c.AddToPlaylist("my_mix", "dog1")
	c.AddToPlaylist("my_mix", "cat1")
	c.Flag("cat1", "")

	view, err := c.ShowPlaylist("MY_MIX")
	require.NoError(t, err)
	assert.Equal(t, "My_Mix", view.Name)
	require.Len(t, view.Entries, 2)
	assert.Equal(t, "Funny Dogs (dog1) [dog animal]", view.Entries[0].Details())
	assert.Equal(t, "Amazing Cats (cat1) [cat animal] - FLAGGED (reason: Not supplied)", view.Entries[1].Details())

	_, err = c.ShowPlaylist("other")
	assert.ErrorIs(t, err, ErrNoSuchPlaylist)
}

func TestAddRemoveRoundTrip(t *testing.T) {
	c := newTestController(t)
	c.CreatePlaylist("mix")
	c.AddToPlaylist("mix", "dog1")
	c.AddToPlaylist("mix", "cat2")

	before := c.Snapshot().Playlists[0].VideoIDs

	_, err := c.AddToPlaylist("mix", "cat1")
	require.NoError(t, err)
	_, err = c.RemoveFromPlaylist("mix", "cat1")
	require.NoError(t, err)

	assert.Equal(t, before, c.Snapshot().Playlists[0].VideoIDs)
}

func TestRemoveFromPlaylist_Failures(t *testing.T) {
	c := newTestController(t)

	_, err := c.RemoveFromPlaylist("mix", "dog1")
	assert.ErrorIs(t, err, ErrNoSuchPlaylist)

	c.CreatePlaylist("mix")
	_, err = c.RemoveFromPlaylist("mix", "missing")
	assert.ErrorIs(t, err, ErrNoSuchVideo)

	_, err = c.RemoveFromPlaylist("mix", "dog1")
	assert.ErrorIs(t, err, ErrNotInPlaylist)
}

func TestClearPlaylist(t *testing.T) {
	c := newTestController(t)
	assert.ErrorIs(t, c.ClearPlaylist("mix"), ErrNoSuchPlaylist)

	c.CreatePlaylist("mix")
	c.AddToPlaylist("mix", "dog1")
	require.NoError(t, c.ClearPlaylist("mix"))

	view, err := c.ShowPlaylist("mix")
	require.NoError(t, err)
	assert.Empty(t, view.Entries)
}

func TestDeletePlaylist(t *testing.T) {
	c := newTestController(t)
	assert.ErrorIs(t, c.DeletePlaylist("mix"), ErrNoSuchPlaylist)

	c.CreatePlaylist("mix")
	require.NoError(t, c.DeletePlaylist("MIX"))

	_, err := c.ShowPlaylist("mix")
	assert.ErrorIs(t, err, ErrNoSuchPlaylist)
}

func TestSearch(t *testing.T) {
	c := newTestController(t)

	found, err := c.Search("CAT")
	require.NoError(t, err)
	assert.Equal(t, []string{"Amazing Cats", "another cat video"}, titles(found))

	c.Flag("cat1", "")
	found, err = c.Search("cat")
	require.NoError(t, err)
	assert.Equal(t, []string{"another cat video"}, titles(found))

	_, err = c.Search("horses")
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestSearchByTag(t *testing.T) {
	c := newTestController(t)

	found, err := c.SearchByTag("ANIMAL")
	require.NoError(t, err)
	assert.Equal(t, []string{"Amazing Cats", "Funny Dogs"}, titles(found))

	_, err = c.SearchByTag("anim")
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestFlag_StopsSelectedEvenWhenPaused(t *testing.T) {
	c := newTestController(t)
	c.Play("cat1")
	c.Pause()

	res, err := c.Flag("cat1", "dont_like_cats")
	require.NoError(t, err)
	require.NotNil(t, res.Stopped)
	assert.Equal(t, "cat1", res.Stopped.ID)
	assert.Equal(t, "dont_like_cats", res.Reason)

	_, ok := c.Current()
	assert.False(t, ok)
}

func TestFlag_OtherVideoKeepsPlaying(t *testing.T) {
	c := newTestController(t)
	c.Play("dog1")

	res, err := c.Flag("cat1", "")
	require.NoError(t, err)
	assert.Nil(t, res.Stopped)
	assert.Equal(t, flags.DefaultReason, res.Reason)

	pb, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "dog1", pb.Video.ID)
}

func TestFlag_Failures(t *testing.T) {
	c := newTestController(t)

	_, err := c.Flag("missing", "")
	assert.ErrorIs(t, err, ErrNoSuchVideo)

	c.Flag("cat1", "")
	_, err = c.Flag("cat1", "again")
	assert.ErrorIs(t, err, ErrAlreadyFlagged)
}

func TestUnflag(t *testing.T) {
	c := newTestController(t)

	_, err := c.Unflag("missing")
	assert.ErrorIs(t, err, ErrNoSuchVideo)

	_, err = c.Unflag("cat1")
	assert.ErrorIs(t, err, ErrNotFlagged)

	c.Play("cat1")
	c.Flag("cat1", "")
	v, err := c.Unflag("cat1")
	require.NoError(t, err)
	assert.Equal(t, "cat1", v.ID)

	_, ok := c.Current()
	assert.False(t, ok)

	_, err = c.Play("cat1")
	assert.NoError(t, err)
}

func TestSnapshotRestore(t *testing.T) {
	c := newTestController(t)
	c.CreatePlaylist("Mix")
	c.AddToPlaylist("mix", "dog1")
	c.Flag("cat1", "spam")
	snap := c.Snapshot()

	other := newTestController(t)
	other.Play("dog1")
	other.Restore(snap)

	_, ok := other.Current()
	assert.False(t, ok)

	view, err := other.ShowPlaylist("MIX")
	require.NoError(t, err)
	assert.Equal(t, "Mix", view.Name)
	require.Len(t, view.Entries, 1)

	_, err = other.Play("cat1")
	assert.ErrorIs(t, err, ErrFlagged)
}

func TestRestore_DropsUnknownIDs(t *testing.T) {
	c := newTestController(t)
	c.Restore(Snapshot{
		Playlists: []playlist.Playlist{
			{Name: "Mix", VideoIDs: []string{"gone", "dog1", "dog1"}},
			{Name: "mix", VideoIDs: []string{"cat1"}},
		},
		Flags: map[string]string{"gone": "x", "cat2": "y"},
	})

	snap := c.Snapshot()
	require.Len(t, snap.Playlists, 1)
	assert.Equal(t, []string{"dog1"}, snap.Playlists[0].VideoIDs)
	assert.Equal(t, map[string]string{"cat2": "y"}, snap.Flags)
}
