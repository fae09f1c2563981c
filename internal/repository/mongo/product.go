package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"rentmarket-backend/internal/domain"
	"rentmarket-backend/internal/repository"
)

type productRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) repository.ProductRepository {
	return &productRepository{col: db.Collection("products")}
}

func (r *productRepository) Insert(ctx context.Context, p *domain.Product) error {
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *productRepository) Save(ctx context.Context, p *domain.Product) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p, opts); err != nil {
		return fmt.Errorf("save product %s: %w", p.ID, err)
	}
	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.NotFound("product", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find product %s: %w", id, err)
	}
	return &p, nil
}

func (r *productRepository) FindByIDIn(ctx context.Context, ids []string, page repository.Page) ([]domain.Product, error) {
	opts := options.Find().
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.Limit()))
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find products by id set: %w", err)
	}
	return decodeProducts(ctx, cur)
}

func (r *productRepository) FindByOwner(ctx context.Context, ownerID string) ([]domain.Product, error) {
	cur, err := r.col.Find(ctx, bson.M{"ownerUserId": ownerID})
	if err != nil {
		return nil, fmt.Errorf("find products by owner %s: %w", ownerID, err)
	}
	return decodeProducts(ctx, cur)
}

func (r *productRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find all products: %w", err)
	}
	return decodeProducts(ctx, cur)
}

func (r *productRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return domain.NotFound("product", id)
	}
	return nil
}

func decodeProducts(ctx context.Context, cur *mongo.Cursor) ([]domain.Product, error) {
	defer cur.Close(ctx)
	var products []domain.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}
