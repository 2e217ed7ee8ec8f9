package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

const collectionPosts = "posts"

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection(collectionPosts)}
}

type mongoPost struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user"`
	Title       string             `bson:"title"`
	Slug        string             `bson:"slug"`
	Category    string             `bson:"category"`
	Description string             `bson:"desc,omitempty"`
	Content     string             `bson:"content,omitempty"`
	Img         string             `bson:"img,omitempty"`
	Visit       int64              `bson:"visit"`
	IsFeatured  bool               `bson:"is_featured"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (m mongoPost) toDomain() *domain.Post {
	return &domain.Post{
		ID:          m.ID.Hex(),
		UserID:      m.UserID,
		Title:       m.Title,
		Slug:        m.Slug,
		Category:    m.Category,
		Description: m.Description,
		Content:     m.Content,
		Img:         m.Img,
		Visit:       m.Visit,
		IsFeatured:  m.IsFeatured,
		CreatedAt:   m.CreatedAt,
	}
}

// Create inserts a new post document. A duplicate on the unique slug index is
// reported as domain.ErrSlugConflict so the service can regenerate and retry.
func (r *PostRepository) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoPost{
		UserID:      p.UserID,
		Title:       p.Title,
		Slug:        p.Slug,
		Category:    p.Category,
		Description: p.Description,
		Content:     p.Content,
		Img:         p.Img,
		IsFeatured:  p.IsFeatured,
		CreatedAt:   p.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrSlugConflict
		}
		return nil, err
	}

	created := *p
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoPost
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}
	return m.toDomain(), nil
}

func (r *PostRepository) FindBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoPost
	if err := r.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}
	return m.toDomain(), nil
}

// SlugExists reports whether a post other than excludeID already holds slug.
func (r *PostRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"slug": slug}
	if excludeID != "" {
		oid, err := primitive.ObjectIDFromHex(excludeID)
		if err == nil {
			filter["_id"] = bson.M{"$ne": oid}
		}
	}

	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns one page of posts matching filter plus the total match count.
func (r *PostRepository) List(ctx context.Context, filter ports.ListPostsFilter) ([]*domain.Post, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.UserID != "" {
		query["user"] = filter.UserID
	}
	if filter.Search != "" {
		query["title"] = primitive.Regex{Pattern: filter.Search, Options: "i"}
	}
	if filter.FeaturedOnly {
		query["is_featured"] = true
	}
	if !filter.CreatedAfter.IsZero() {
		query["created_at"] = bson.M{"$gte": filter.CreatedAfter}
	}

	sort := bson.D{{Key: "created_at", Value: -1}}
	switch filter.Sort {
	case ports.SortOldest:
		sort = bson.D{{Key: "created_at", Value: 1}}
	case ports.SortPopular, ports.SortTrending:
		sort = bson.D{{Key: "visit", Value: -1}}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(sort).
		SetLimit(int64(filter.Limit)).
		SetSkip(int64((filter.Page - 1) * filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var posts []*domain.Post
	for cur.Next(ctx) {
		var m mongoPost
		if err := cur.Decode(&m); err != nil {
			return nil, 0, err
		}
		posts = append(posts, m.toDomain())
	}
	return posts, total, cur.Err()
}

func (r *PostRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []*domain.Post
	for cur.Next(ctx) {
		var m mongoPost
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		posts = append(posts, m.toDomain())
	}
	return posts, cur.Err()
}

func (r *PostRepository) Update(ctx context.Context, p *domain.Post) error {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":    p.Title,
		"slug":     p.Slug,
		"category": p.Category,
		"desc":     p.Description,
		"content":  p.Content,
		"img":      p.Img,
	}}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrSlugConflict
		}
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) SetFeatured(ctx context.Context, id string, featured bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"is_featured": featured}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) IncrementVisit(ctx context.Context, slug string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"slug": slug}, bson.M{"$inc": bson.M{"visit": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"user": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListStats fetches the projection the stats aggregator needs: ownership,
// category, visit counter, and content for reading-time math.
func (r *PostRepository) ListStats(ctx context.Context) ([]ports.PostStatsRow, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	projection := bson.M{
		"user":     1,
		"title":    1,
		"slug":     1,
		"content":  1,
		"category": 1,
		"visit":    1,
	}

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetProjection(projection))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []ports.PostStatsRow
	for cur.Next(ctx) {
		var m mongoPost
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		rows = append(rows, ports.PostStatsRow{
			ID:       m.ID.Hex(),
			UserID:   m.UserID,
			Title:    m.Title,
			Slug:     m.Slug,
			Content:  m.Content,
			Category: m.Category,
			Visit:    m.Visit,
		})
	}
	return rows, cur.Err()
}

// EnsureIndexes creates the post indexes. The unique slug index is the
// storage-layer guard behind the slug collision retry.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
