package mongorepo

import (
	"context"

	"mortex-shop/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductRepo struct{ col *mongo.Collection }

func NewProductRepo(db *mongo.Database) *ProductRepo {
	return &ProductRepo{col: db.Collection(productsCollection)}
}

func (r *ProductRepo) UnitPrice(ctx context.Context, name string) (int64, error) {
	var p models.Product
	if err := r.col.FindOne(ctx, bson.M{"_id": name}).Decode(&p); err != nil {
		return 0, translate(err)
	}
	return p.UnitPrice, nil
}

func (r *ProductRepo) BySection(ctx context.Context, section string) ([]models.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"section": section}, opts)
	if err != nil {
		return nil, err
	}

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepo) Upsert(ctx context.Context, p *models.Product) error {
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.Name}, p, options.Replace().SetUpsert(true))
	return err
}
