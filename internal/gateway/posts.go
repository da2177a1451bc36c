package gateway

import (
	"context"
	"time"

	"github.com/WriteMind/blog-service/internal/docstore"
	"github.com/WriteMind/blog-service/internal/dto"
	"github.com/WriteMind/blog-service/internal/model"
)

func postPath(id string) string {
	return POSTS_COLLECTION + "/" + id
}

// ListPosts returns all posts, most recently updated first. On any remote
// failure it returns an empty slice: callers must treat empty as "unknown",
// not as "no posts exist".
func (g *Gateway) ListPosts(ctx context.Context) []model.Post {
	docs, err := g.store.Query(ctx, POSTS_COLLECTION, docstore.Query{OrderBy: "updatedAt", Descending: true})
	if err != nil {
		g.logger.Sugar().Errorf("failed to list posts: %s", err.Error())
		return nil
	}
	return decodePosts(docs)
}

// ListAuthorPosts returns the given author's posts, most recently updated
// first. Fails closed to an empty slice like ListPosts.
func (g *Gateway) ListAuthorPosts(ctx context.Context, authorID string) []model.Post {
	docs, err := g.store.Query(ctx, POSTS_COLLECTION, docstore.Query{
		OrderBy:     "updatedAt",
		Descending:  true,
		FilterField: "authorId",
		FilterValue: authorID,
	})
	if err != nil {
		g.logger.Sugar().Errorf("failed to list author(%s) posts: %s", authorID, err.Error())
		return nil
	}
	return decodePosts(docs)
}

// CreatePost writes a new post under a generated id. The author identity
// must be present; the excerpt is derived from the content and absent
// optional attributes are stripped so the store never receives null
// placeholders.
func (g *Gateway) CreatePost(ctx context.Context, req dto.CreatePostRequest, authorID, authorName string) (*model.Post, error) {
	if authorID == "" || authorName == "" {
		return nil, ErrAuthenticationRequired
	}

	status := req.Status
	if status == "" {
		status = model.StatusDraft
	}

	data := map[string]any{
		"title":      req.Title,
		"content":    req.Content,
		"tags":       req.Tags,
		"excerpt":    model.Excerpt(req.Content),
		"status":     string(status),
		"authorId":   authorID,
		"authorName": authorName,
		"createdAt":  docstore.ServerTimestamp,
		"updatedAt":  docstore.ServerTimestamp,
	}
	if req.ImageURL != nil {
		data["imageUrl"] = *req.ImageURL
	}

	var id string
	err := g.withRetry(ctx, "create post", func() error {
		var addErr error
		id, addErr = g.store.Add(ctx, POSTS_COLLECTION, data)
		return addErr
	})
	if err != nil {
		g.logger.Sugar().Errorf("failed to create post for user(%s): %s", authorID, err.Error())
		return nil, err
	}

	return g.fetchPost(ctx, id, data), nil
}

// UpdatePost merges the supplied fields into an existing post, re-deriving
// the excerpt and refreshing the updated timestamp. It deliberately performs
// no ownership check: the caller is the sole enforcement point.
func (g *Gateway) UpdatePost(ctx context.Context, id string, req dto.UpdatePostRequest) (*model.Post, error) {
	if id == "" {
		return nil, ErrMissingParameters
	}

	data := map[string]any{
		"title":     req.Title,
		"content":   req.Content,
		"tags":      req.Tags,
		"excerpt":   model.Excerpt(req.Content),
		"updatedAt": docstore.ServerTimestamp,
	}
	if req.Status != "" {
		data["status"] = string(req.Status)
	}
	if req.ImageURL != nil {
		data["imageUrl"] = *req.ImageURL
	}

	err := g.withRetry(ctx, "update post", func() error {
		return g.store.Update(ctx, postPath(id), data)
	})
	if err != nil {
		g.logger.Sugar().Errorf("failed to update post(%s): %s", id, err.Error())
		return nil, err
	}

	return g.fetchPost(ctx, id, data), nil
}

// DeletePost removes a post. Irreversible; authorization is the caller's
// responsibility, same as UpdatePost.
func (g *Gateway) DeletePost(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingParameters
	}

	err := g.withRetry(ctx, "delete post", func() error {
		return g.store.Delete(ctx, postPath(id))
	})
	if err != nil {
		g.logger.Sugar().Errorf("failed to delete post(%s): %s", id, err.Error())
		return err
	}
	return nil
}

// fetchPost re-reads a freshly written post so server-assigned timestamps
// are reflected; if the read fails the written fields are echoed back with
// the local clock standing in.
func (g *Gateway) fetchPost(ctx context.Context, id string, written map[string]any) *model.Post {
	doc, err := g.store.Get(ctx, postPath(id))
	if err == nil {
		post := decodePost(doc)
		return &post
	}
	g.logger.Sugar().Warnf("failed to read back post(%s): %s", id, err.Error())

	now := time.Now().UTC()
	echoed := make(map[string]any, len(written))
	for k, v := range written {
		if v == docstore.ServerTimestamp {
			v = now
		}
		echoed[k] = v
	}
	post := decodePost(&docstore.Document{ID: id, Path: postPath(id), Data: echoed})
	return &post
}

func decodePosts(docs []*docstore.Document) []model.Post {
	posts := make([]model.Post, 0, len(docs))
	for _, doc := range docs {
		posts = append(posts, decodePost(doc))
	}
	return posts
}

func decodePost(doc *docstore.Document) model.Post {
	return model.Post{
		ID:         doc.ID,
		AuthorID:   asString(doc.Data["authorId"]),
		AuthorName: asString(doc.Data["authorName"]),
		Title:      asString(doc.Data["title"]),
		Content:    asString(doc.Data["content"]),
		Excerpt:    asString(doc.Data["excerpt"]),
		Tags:       asString(doc.Data["tags"]),
		ImageURL:   asString(doc.Data["imageUrl"]),
		Status:     model.PostStatus(asString(doc.Data["status"])),
		CreatedAt:  asTime(doc.Data["createdAt"]),
		UpdatedAt:  asTime(doc.Data["updatedAt"]),
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err == nil {
			return parsed
		}
	}
	return time.Time{}
}
