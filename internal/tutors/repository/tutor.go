package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	tutorserrors "tutorhub/internal/tutors/errors"
	"tutorhub/pkg/config"
	"tutorhub/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "tutors"

type TutorRepository interface {
	Create(ctx context.Context, tutor *model.Tutor) error
	FindByID(ctx context.Context, id string) (*model.Tutor, error)
	FindByUserID(ctx context.Context, userID string) (*model.Tutor, error)
	Search(ctx context.Context, filter model.TutorFilter, limit int, offset int64) ([]*model.Tutor, int64, error)
	SetVerified(ctx context.Context, id string, verified bool) error
}

type mongoTutorRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoTutorRepository(cfg *config.Config) TutorRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoTutorRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoTutorRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoTutorRepository) Create(ctx context.Context, tutor *model.Tutor) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	tutor.ID = uuid.NewString()
	tutor.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if _, err := r.collection.InsertOne(ctx, tutor); err != nil {
		return fmt.Errorf("failed to create tutor: %w", err)
	}
	return nil
}

func (r *mongoTutorRepository) FindByID(ctx context.Context, id string) (*model.Tutor, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoTutorRepository) FindByUserID(ctx context.Context, userID string) (*model.Tutor, error) {
	return r.findOne(ctx, bson.M{"user_id": userID})
}

func (r *mongoTutorRepository) findOne(ctx context.Context, filter bson.M) (*model.Tutor, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var tutor model.Tutor
	err := r.collection.FindOne(ctx, filter).Decode(&tutor)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, tutorserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tutor: %w", err)
	}
	return &tutor, nil
}

// Search matches profiles against the filter, newest first. Text fields
// match case-insensitively as substrings; an empty filter lists everyone.
func (r *mongoTutorRepository) Search(ctx context.Context, filter model.TutorFilter, limit int, offset int64) ([]*model.Tutor, int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	query := buildSearchQuery(filter)

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count tutors: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search tutors: %w", err)
	}
	defer cursor.Close(ctx)

	var tutors []*model.Tutor
	if err = cursor.All(ctx, &tutors); err != nil {
		return nil, 0, fmt.Errorf("failed to decode tutors: %w", err)
	}
	return tutors, total, nil
}

func (r *mongoTutorRepository) SetVerified(ctx context.Context, id string, verified bool) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"verified": verified}},
	)
	if err != nil {
		return fmt.Errorf("failed to update tutor: %w", err)
	}
	if result.MatchedCount == 0 {
		return tutorserrors.ErrNotFound
	}
	return nil
}

func buildSearchQuery(filter model.TutorFilter) bson.M {
	query := bson.M{}

	if filter.Subject != "" {
		query["subject"] = containsRegex(filter.Subject)
	}
	if filter.Location != "" {
		query["location"] = containsRegex(filter.Location)
	}
	if filter.Language != "" {
		query["languages"] = containsRegex(filter.Language)
	}
	if filter.Standard != "" {
		query["standard"] = containsRegex(filter.Standard)
	}
	if filter.Gender != "" {
		query["gender"] = strings.ToLower(filter.Gender)
	}
	if filter.MinFees > 0 || filter.MaxFees > 0 {
		fees := bson.M{}
		if filter.MinFees > 0 {
			fees["$gte"] = filter.MinFees
		}
		if filter.MaxFees > 0 {
			fees["$lte"] = filter.MaxFees
		}
		query["fees"] = fees
	}
	if filter.Verified != nil {
		query["verified"] = *filter.Verified
	}

	return query
}

func containsRegex(value string) primitive.Regex {
	return primitive.Regex{
		Pattern: regexp.QuoteMeta(strings.TrimSpace(value)),
		Options: "i",
	}
}
