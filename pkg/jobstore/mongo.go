package jobstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig configures a MongoStore.
type MongoConfig struct {
	URI        string
	Database   string // default "meander"
	Collection string // default "jobs"
}

// MongoStore keeps jobs in a MongoDB collection. Requests and results are
// stored as JSON payloads; the lifecycle fields are plain document fields
// so expired jobs can be removed with a query.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type mongoJob struct {
	ID        string    `bson:"_id"`
	Status    string    `bson:"status"`
	Error     string    `bson:"error,omitempty"`
	Requests  []byte    `bson:"requests"`
	Results   []byte    `bson:"results,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "meander"
	}
	if cfg.Collection == "" {
		cfg.Collection = "jobs"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create ttl index: %w", err)
	}

	return &MongoStore{client: client, coll: coll}, nil
}

func (s *MongoStore) Put(ctx context.Context, job *Job) error {
	doc, err := toMongo(job)
	if err != nil {
		return err
	}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": job.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("store job: %w", err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Job, error) {
	var doc mongoJob
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load job: %w", err)
	}

	job, err := fromMongo(doc)
	if err != nil {
		return nil, err
	}
	if job.IsExpired() {
		return nil, ErrNotFound
	}
	return job, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

// Cleanup removes expired jobs. The TTL index does the same in the
// background; this makes removal immediate.
func (s *MongoStore) Cleanup(ctx context.Context) error {
	_, err := s.coll.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": time.Now().UTC()}})
	if err != nil {
		return fmt.Errorf("cleanup jobs: %w", err)
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func toMongo(job *Job) (mongoJob, error) {
	reqs, err := json.Marshal(job.Requests)
	if err != nil {
		return mongoJob{}, fmt.Errorf("marshal requests: %w", err)
	}
	doc := mongoJob{
		ID:        job.ID,
		Status:    string(job.Status),
		Error:     job.Error,
		Requests:  reqs,
		CreatedAt: job.CreatedAt,
		UpdatedAt: job.UpdatedAt,
		ExpiresAt: job.ExpiresAt,
	}
	if job.Results != nil {
		if doc.Results, err = json.Marshal(job.Results); err != nil {
			return mongoJob{}, fmt.Errorf("marshal results: %w", err)
		}
	}
	return doc, nil
}

func fromMongo(doc mongoJob) (*Job, error) {
	job := &Job{
		ID:        doc.ID,
		Status:    Status(doc.Status),
		Error:     doc.Error,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
		ExpiresAt: doc.ExpiresAt,
	}
	if err := json.Unmarshal(doc.Requests, &job.Requests); err != nil {
		return nil, fmt.Errorf("parse requests: %w", err)
	}
	if len(doc.Results) > 0 {
		if err := json.Unmarshal(doc.Results, &job.Results); err != nil {
			return nil, fmt.Errorf("parse results: %w", err)
		}
	}
	return job, nil
}

var _ Store = (*MongoStore)(nil)
