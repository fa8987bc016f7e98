package service

import (
	"context"
	"testing"

	"pvadb-backend/internal/domains/content"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContentRepo struct {
	posts    map[uuid.UUID]*content.Post
	research map[uuid.UUID]*content.ResearchLink
	videos   map[uuid.UUID]*content.Video
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{
		posts:    map[uuid.UUID]*content.Post{},
		research: map[uuid.UUID]*content.ResearchLink{},
		videos:   map[uuid.UUID]*content.Video{},
	}
}

func (f *fakeContentRepo) CreatePost(ctx context.Context, p *content.Post) error {
	for _, existing := range f.posts {
		if existing.Slug == p.Slug {
			return content.ErrDuplicateSlug
		}
	}
	cp := *p
	f.posts[p.ID] = &cp
	return nil
}

func (f *fakeContentRepo) GetPostByID(ctx context.Context, id uuid.UUID) (*content.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, content.ErrPostNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeContentRepo) GetPostBySlug(ctx context.Context, slug string) (*content.Post, error) {
	for _, p := range f.posts {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, content.ErrPostNotFound
}

func (f *fakeContentRepo) ListPosts(ctx context.Context, publishedOnly bool, offset, limit int) ([]content.Post, int64, error) {
	out := []content.Post{}
	for _, p := range f.posts {
		if publishedOnly && !p.Published {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeContentRepo) UpdatePost(ctx context.Context, p *content.Post) error {
	if _, ok := f.posts[p.ID]; !ok {
		return content.ErrPostNotFound
	}
	cp := *p
	f.posts[p.ID] = &cp
	return nil
}

func (f *fakeContentRepo) DeletePost(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.posts[id]; !ok {
		return content.ErrPostNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakeContentRepo) CreateResearch(ctx context.Context, l *content.ResearchLink) error {
	cp := *l
	f.research[l.ID] = &cp
	return nil
}

func (f *fakeContentRepo) ListResearch(ctx context.Context) ([]content.ResearchLink, error) {
	out := []content.ResearchLink{}
	for _, l := range f.research {
		out = append(out, *l)
	}
	return out, nil
}

func (f *fakeContentRepo) DeleteResearch(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.research[id]; !ok {
		return content.ErrResearchNotFound
	}
	delete(f.research, id)
	return nil
}

func (f *fakeContentRepo) CreateVideo(ctx context.Context, v *content.Video) error {
	cp := *v
	f.videos[v.ID] = &cp
	return nil
}

func (f *fakeContentRepo) ListVideos(ctx context.Context) ([]content.Video, error) {
	out := []content.Video{}
	for _, v := range f.videos {
		out = append(out, *v)
	}
	return out, nil
}

func (f *fakeContentRepo) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.videos[id]; !ok {
		return content.ErrVideoNotFound
	}
	delete(f.videos, id)
	return nil
}

func TestCreatePost_Draft(t *testing.T) {
	repo := newFakeContentRepo()
	svc := NewContentService(repo)

	p, err := svc.CreatePost(context.Background(), content.CreatePostRequest{
		Title: "What is PVA?",
		Body:  "Polyvinyl alcohol is...",
	})

	require.NoError(t, err)
	assert.Equal(t, "what-is-pva", p.Slug)
	assert.False(t, p.Published)
	assert.Nil(t, p.PublishedAt)
}

func TestCreatePost_PublishedStampsTime(t *testing.T) {
	svc := NewContentService(newFakeContentRepo())

	p, err := svc.CreatePost(context.Background(), content.CreatePostRequest{
		Title:     "What is PVA?",
		Body:      "Polyvinyl alcohol is...",
		Published: true,
	})

	require.NoError(t, err)
	assert.True(t, p.Published)
	require.NotNil(t, p.PublishedAt)
}

func TestGetPostBySlug_DraftsHidden(t *testing.T) {
	repo := newFakeContentRepo()
	svc := NewContentService(repo)

	_, err := svc.CreatePost(context.Background(), content.CreatePostRequest{
		Title: "Draft Post",
		Body:  "Work in progress",
	})
	require.NoError(t, err)

	_, err = svc.GetPostBySlug(context.Background(), "draft-post")

	require.ErrorIs(t, err, content.ErrPostNotFound,
		"unpublished posts must be invisible to the public")
}

func TestUpdatePost_UnpublishKeepsOriginalPublishTime(t *testing.T) {
	repo := newFakeContentRepo()
	svc := NewContentService(repo)

	p, err := svc.CreatePost(context.Background(), content.CreatePostRequest{
		Title:     "What is PVA?",
		Body:      "Polyvinyl alcohol is...",
		Published: true,
	})
	require.NoError(t, err)
	firstPublished := *p.PublishedAt

	off := false
	_, err = svc.UpdatePost(context.Background(), p.ID, content.UpdatePostRequest{Published: &off})
	require.NoError(t, err)

	on := true
	updated, err := svc.UpdatePost(context.Background(), p.ID, content.UpdatePostRequest{Published: &on})
	require.NoError(t, err)

	require.NotNil(t, updated.PublishedAt)
	assert.Equal(t, firstPublished, *updated.PublishedAt, "re-publishing keeps the original date")
}

func TestAddResearch_Validation(t *testing.T) {
	svc := NewContentService(newFakeContentRepo())

	_, err := svc.AddResearch(context.Background(), content.CreateResearchRequest{
		Title:  "PVA biodegradation study",
		URL:    "not-a-url",
		Source: "Journal of Cleaner Production",
	})

	require.Error(t, err)
}

func TestAddVideo_PlatformWhitelist(t *testing.T) {
	svc := NewContentService(newFakeContentRepo())

	_, err := svc.AddVideo(context.Background(), content.CreateVideoRequest{
		Title:    "PVA explained",
		URL:      "https://videos.example.com/watch?v=1",
		Platform: "myspace",
	})
	require.Error(t, err)

	v, err := svc.AddVideo(context.Background(), content.CreateVideoRequest{
		Title:    "PVA explained",
		URL:      "https://videos.example.com/watch?v=1",
		Platform: "youtube",
	})
	require.NoError(t, err)
	assert.Equal(t, "youtube", v.Platform)
}
