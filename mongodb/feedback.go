package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"fincontrol/api/models"
)

func CreateFeedback(ctx context.Context, item *models.Feedback) error {
	collection := MongoClient.Database(MongoDatabase).Collection(FeedbackCollection)
	_, err := collection.InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("error creating feedback: %v", err)
	}
	return nil
}

func ListFeedbackByUserID(ctx context.Context, userID string) ([]models.Feedback, error) {
	collection := MongoClient.Database(MongoDatabase).Collection(FeedbackCollection)

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := collection.Find(ctx, bson.D{{Key: "user_id", Value: userID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing feedback: %v", err)
	}
	defer cursor.Close(ctx)

	feedback := []models.Feedback{}
	if err := cursor.All(ctx, &feedback); err != nil {
		return nil, fmt.Errorf("error decoding feedback: %v", err)
	}
	return feedback, nil
}

func DeleteFeedbackByUserID(ctx context.Context, userID string) error {
	collection := MongoClient.Database(MongoDatabase).Collection(FeedbackCollection)
	_, err := collection.DeleteMany(ctx, bson.D{{Key: "user_id", Value: userID}})
	if err != nil {
		return fmt.Errorf("error deleting feedback: %v", err)
	}
	return nil
}
