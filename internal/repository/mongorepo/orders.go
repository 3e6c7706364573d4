package mongorepo

import (
	"context"

	"mortex-shop/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderRepo struct{ col *mongo.Collection }

func NewOrderRepo(db *mongo.Database) *OrderRepo {
	return &OrderRepo{col: db.Collection(ordersCollection)}
}

func (r *OrderRepo) Create(ctx context.Context, o *models.Order) error {
	if _, err := r.col.InsertOne(ctx, o); err != nil {
		return translate(err)
	}
	return nil
}

func (r *OrderRepo) ListByEmail(ctx context.Context, email string) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"userEmail": email}, opts)
	if err != nil {
		return nil, err
	}

	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
