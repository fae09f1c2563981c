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

type rentRequestRepository struct {
	col *mongo.Collection
}

func NewRentRequestRepository(db *mongo.Database) repository.RentRequestRepository {
	return &rentRequestRepository{col: db.Collection("rent_requests")}
}

func (r *rentRequestRepository) Insert(ctx context.Context, req *domain.RentRequest) error {
	if _, err := r.col.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("insert rent request: %w", err)
	}
	return nil
}

func (r *rentRequestRepository) FindByID(ctx context.Context, id string) (*domain.RentRequest, error) {
	var req domain.RentRequest
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.NotFound("rent_request", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find rent request %s: %w", id, err)
	}
	return &req, nil
}

func (r *rentRequestRepository) FindByRequester(ctx context.Context, requesterID string) ([]domain.RentRequest, error) {
	cur, err := r.col.Find(ctx, bson.M{"requesterUserId": requesterID})
	if err != nil {
		return nil, fmt.Errorf("find rent requests by requester %s: %w", requesterID, err)
	}
	return decodeRentRequests(ctx, cur)
}

func (r *rentRequestRepository) FindByReceiver(ctx context.Context, receiverID string) ([]domain.RentRequest, error) {
	cur, err := r.col.Find(ctx, bson.M{"receiverUserId": receiverID})
	if err != nil {
		return nil, fmt.Errorf("find rent requests by receiver %s: %w", receiverID, err)
	}
	return decodeRentRequests(ctx, cur)
}

func (r *rentRequestRepository) FindAll(ctx context.Context) ([]domain.RentRequest, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find all rent requests: %w", err)
	}
	return decodeRentRequests(ctx, cur)
}

// UpdateStatus performs the transition as a single conditional write so
// that two concurrent accept/reject calls cannot both win. The filter
// matches on the expected prior status; if another writer got there
// first the filter matches nothing and a Conflict is returned.
func (r *rentRequestRepository) UpdateStatus(ctx context.Context, id string, from, to domain.RentRequestStatus) (*domain.RentRequest, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var req domain.RentRequest
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to}},
		opts,
	).Decode(&req)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Distinguish a vanished request from a lost transition race.
		if _, findErr := r.FindByID(ctx, id); findErr != nil {
			return nil, findErr
		}
		return nil, domain.Conflict("rent_request", fmt.Sprintf("rent request %s is no longer %s", id, from))
	}
	if err != nil {
		return nil, fmt.Errorf("update rent request %s status: %w", id, err)
	}
	return &req, nil
}

func (r *rentRequestRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete rent request %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return domain.NotFound("rent_request", id)
	}
	return nil
}

func decodeRentRequests(ctx context.Context, cur *mongo.Cursor) ([]domain.RentRequest, error) {
	defer cur.Close(ctx)
	var requests []domain.RentRequest
	if err := cur.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("decode rent requests: %w", err)
	}
	return requests, nil
}
