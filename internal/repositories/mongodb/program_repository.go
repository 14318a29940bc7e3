package mongodb

import (
	"context"
	"fmt"
	"time"

	"affiliatenest/internal/models"
	"affiliatenest/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type programRepository struct {
	collection *mongo.Collection
}

func NewProgramRepository(db *mongo.Database) interfaces.ProgramRepository {
	return &programRepository{
		collection: db.Collection("affiliate_programs"),
	}
}

func (r *programRepository) Create(ctx context.Context, program *models.AffiliateProgram) error {
	program.ID = primitive.NewObjectID()
	program.CreatedAt = time.Now()
	program.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, program)
	if err != nil {
		return fmt.Errorf("failed to create program: %w", err)
	}

	return nil
}

func (r *programRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.AffiliateProgram, error) {
	var program models.AffiliateProgram
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&program)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("program: %w", interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get program: %w", err)
	}

	return &program, nil
}

func (r *programRepository) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.AffiliateProgram, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	defer cursor.Close(ctx)

	var programs []*models.AffiliateProgram
	if err := cursor.All(ctx, &programs); err != nil {
		return nil, fmt.Errorf("failed to decode programs: %w", err)
	}

	return programs, nil
}

func (r *programRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update program: %w", err)
	}

	return nil
}
