package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewsItem is an ingested article in the MongoDB news collection.
// The ingestion pipeline owns the collection; this service only reads it.
type NewsItem struct {
	ObjectID    primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	NewsID      int64              `json:"id" bson:"news_id"`
	Headline    string             `json:"headline" bson:"title"`
	Summary     string             `json:"summary,omitempty" bson:"summary,omitempty"`
	Source      string             `json:"source,omitempty" bson:"source,omitempty"`
	URL         string             `json:"url" bson:"url"`
	PublishedAt time.Time          `json:"published_at" bson:"published_at"`
}
