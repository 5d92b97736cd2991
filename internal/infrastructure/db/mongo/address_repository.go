package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ecomstore/commerce-api/internal/core/domain"
)

const addressCollection = "addresses"

// AddressRepository persists shipping addresses keyed by owner username.
type AddressRepository struct {
	coll *mongo.Collection
}

func NewAddressRepository(db *mongo.Database) *AddressRepository {
	return &AddressRepository{coll: db.Collection(addressCollection)}
}

type mongoAddress struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
	Street   string             `bson:"street"`
	City     string             `bson:"city"`
	State    string             `bson:"state,omitempty"`
	Country  string             `bson:"country"`
	ZipCode  string             `bson:"zip_code"`
}

func (ma mongoAddress) toDomain() domain.Address {
	return domain.Address{
		ID:       ma.ID.Hex(),
		Username: ma.Username,
		Street:   ma.Street,
		City:     ma.City,
		State:    ma.State,
		Country:  ma.Country,
		ZipCode:  ma.ZipCode,
	}
}

func (r *AddressRepository) FindByID(ctx context.Context, id string) (*domain.Address, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAddressNotFound
	}

	var ma mongoAddress
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAddressNotFound
		}
		return nil, fmt.Errorf("find address: %w", err)
	}
	address := ma.toDomain()
	return &address, nil
}

func (r *AddressRepository) FindByUsername(ctx context.Context, username string) ([]domain.Address, error) {
	cur, err := r.coll.Find(ctx, bson.M{"username": username})
	if err != nil {
		return nil, fmt.Errorf("find addresses: %w", err)
	}
	defer cur.Close(ctx)

	var addresses []domain.Address
	for cur.Next(ctx) {
		var ma mongoAddress
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode address: %w", err)
		}
		addresses = append(addresses, ma.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate addresses: %w", err)
	}
	return addresses, nil
}

func (r *AddressRepository) Save(ctx context.Context, address *domain.Address) (*domain.Address, error) {
	doc := mongoAddress{
		Username: address.Username,
		Street:   address.Street,
		City:     address.City,
		State:    address.State,
		Country:  address.Country,
		ZipCode:  address.ZipCode,
	}

	if address.ID == "" {
		res, err := r.coll.InsertOne(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("insert address: %w", err)
		}
		return r.FindByID(ctx, res.InsertedID.(primitive.ObjectID).Hex())
	}

	oid, err := primitive.ObjectIDFromHex(address.ID)
	if err != nil {
		return nil, fmt.Errorf("parse address id: %w", err)
	}
	doc.ID = oid
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc); err != nil {
		return nil, fmt.Errorf("update address: %w", err)
	}
	return r.FindByID(ctx, address.ID)
}
