package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/newsroom-social/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewsCatalog reads the ingested news collection.
type NewsCatalog interface {
	GetNewsByID(ctx context.Context, newsID int64) (*models.NewsItem, error)
}

// MongoNewsRepository implements NewsCatalog for MongoDB
type MongoNewsRepository struct {
	collection *mongo.Collection
}

// NewMongoNewsRepository creates a new MongoNewsRepository
func NewMongoNewsRepository(db *mongo.Database) *MongoNewsRepository {
	return &MongoNewsRepository{collection: db.Collection("news")}
}

// GetNewsByID looks a news item up by its numeric ingestion id.
func (r *MongoNewsRepository) GetNewsByID(ctx context.Context, newsID int64) (*models.NewsItem, error) {
	var item models.NewsItem
	opts := options.FindOne().SetProjection(bson.M{"news_id": 1, "title": 1, "source": 1, "url": 1, "published_at": 1})
	err := r.collection.FindOne(ctx, bson.M{"news_id": newsID}, opts).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find news %d: %w", newsID, err)
	}
	return &item, nil
}
