package model

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection    = "users"
	filesCollection    = "files"
	analysesCollection = "analyses"
)

type MongoRepository struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoRepository connects to uri, pings the server and ensures indexes.
func NewMongoRepository(ctx context.Context, uri string, database string) (*MongoRepository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect mongo: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	r := &MongoRepository{client: client, db: client.Database(database)}
	if err := r.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return r, nil
}

func (r *MongoRepository) ensureIndexes(ctx context.Context) error {
	_, err := r.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}
	_, err = r.db.Collection(filesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}, {Key: "uploadedAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create files index: %w", err)
	}
	_, err = r.db.Collection(analysesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "fileId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create analyses index: %w", err)
	}
	return nil
}

func (r *MongoRepository) Backend() string {
	return "mongodb"
}

func (r *MongoRepository) CreateUser(ctx context.Context, user *User) error {
	user.Email = NormalizeEmail(user.Email)
	if _, err := r.db.Collection(usersCollection).InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *MongoRepository) GetUserByID(ctx context.Context, id string) (*User, error) {
	var user User
	err := r.db.Collection(usersCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, translateMongoError(err)
	}
	return &user, nil
}

func (r *MongoRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.db.Collection(usersCollection).FindOne(ctx, bson.M{"email": NormalizeEmail(email)}).Decode(&user)
	if err != nil {
		return nil, translateMongoError(err)
	}
	return &user, nil
}

func (r *MongoRepository) CreateFile(ctx context.Context, file *File) error {
	_, err := r.db.Collection(filesCollection).InsertOne(ctx, file)
	return err
}

func (r *MongoRepository) GetFile(ctx context.Context, id string) (*File, error) {
	var file File
	err := r.db.Collection(filesCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&file)
	if err != nil {
		return nil, translateMongoError(err)
	}
	return &file, nil
}

func (r *MongoRepository) ListFilesByUser(ctx context.Context, userID string) ([]*File, error) {
	opts := options.Find().SetSort(bson.D{{Key: "uploadedAt", Value: -1}})
	cursor, err := r.db.Collection(filesCollection).Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return nil, err
	}
	files := make([]*File, 0)
	if err := cursor.All(ctx, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (r *MongoRepository) CreateAnalysis(ctx context.Context, analysis *Analysis) error {
	_, err := r.db.Collection(analysesCollection).InsertOne(ctx, analysis)
	return err
}

func (r *MongoRepository) ListAnalysesByFile(ctx context.Context, fileID string) ([]*Analysis, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.db.Collection(analysesCollection).Find(ctx, bson.M{"fileId": fileID}, opts)
	if err != nil {
		return nil, err
	}
	analyses := make([]*Analysis, 0)
	if err := cursor.All(ctx, &analyses); err != nil {
		return nil, err
	}
	return analyses, nil
}

func (r *MongoRepository) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}

func translateMongoError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
