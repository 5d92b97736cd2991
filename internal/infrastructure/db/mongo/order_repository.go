package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ecomstore/commerce-api/internal/core/domain"
)

const orderCollection = "orders"

// OrderRepository persists order aggregates. Items and payment details are
// embedded in the order document.
type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection(orderCollection)}
}

type mongoOrderItem struct {
	ProductID    string  `bson:"product_id"`
	ProductName  string  `bson:"product_name"`
	Quantity     int     `bson:"quantity"`
	Discount     float64 `bson:"discount"`
	OrderedPrice float64 `bson:"ordered_price"`
}

type mongoPayment struct {
	Method        string `bson:"method"`
	GatewayID     string `bson:"gateway_id,omitempty"`
	GatewayStatus string `bson:"gateway_status,omitempty"`
}

type mongoOrder struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Email       string             `bson:"email"`
	Username    string             `bson:"username"`
	Items       []mongoOrderItem   `bson:"items"`
	Payment     mongoPayment       `bson:"payment"`
	AddressID   string             `bson:"address_id"`
	TotalAmount float64            `bson:"total_amount"`
	Status      string             `bson:"status"`
	OrderDate   time.Time          `bson:"order_date"`
}

func (mo mongoOrder) toDomain() domain.Order {
	items := make([]domain.OrderItem, len(mo.Items))
	for i, it := range mo.Items {
		items[i] = domain.OrderItem{
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			Quantity:     it.Quantity,
			Discount:     it.Discount,
			OrderedPrice: it.OrderedPrice,
		}
	}
	return domain.Order{
		ID:       mo.ID.Hex(),
		Email:    mo.Email,
		Username: mo.Username,
		Items:    items,
		Payment: domain.Payment{
			Method:        mo.Payment.Method,
			GatewayID:     mo.Payment.GatewayID,
			GatewayStatus: mo.Payment.GatewayStatus,
		},
		AddressID:   mo.AddressID,
		TotalAmount: mo.TotalAmount,
		Status:      domain.OrderStatus(mo.Status),
		OrderDate:   mo.OrderDate,
	}
}

func toMongoOrder(order *domain.Order) mongoOrder {
	items := make([]mongoOrderItem, len(order.Items))
	for i, it := range order.Items {
		items[i] = mongoOrderItem{
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			Quantity:     it.Quantity,
			Discount:     it.Discount,
			OrderedPrice: it.OrderedPrice,
		}
	}
	return mongoOrder{
		Email:    order.Email,
		Username: order.Username,
		Items:    items,
		Payment: mongoPayment{
			Method:        order.Payment.Method,
			GatewayID:     order.Payment.GatewayID,
			GatewayStatus: order.Payment.GatewayStatus,
		},
		AddressID:   order.AddressID,
		TotalAmount: order.TotalAmount,
		Status:      string(order.Status),
		OrderDate:   order.OrderDate,
	}
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	var mo mongoOrder
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mo); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	order := mo.toDomain()
	return &order, nil
}

func (r *OrderRepository) FindByUsername(ctx context.Context, username string) ([]domain.Order, error) {
	cur, err := r.coll.Find(ctx, bson.M{"username": username})
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer cur.Close(ctx)

	var orders []domain.Order
	for cur.Next(ctx) {
		var mo mongoOrder
		if err := cur.Decode(&mo); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		orders = append(orders, mo.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	doc := toMongoOrder(order)

	if order.ID == "" {
		res, err := r.coll.InsertOne(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("insert order: %w", err)
		}
		return r.FindByID(ctx, res.InsertedID.(primitive.ObjectID).Hex())
	}

	oid, err := primitive.ObjectIDFromHex(order.ID)
	if err != nil {
		return nil, fmt.Errorf("parse order id: %w", err)
	}
	doc.ID = oid
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	return r.FindByID(ctx, order.ID)
}
