package repository

import (
	"context"
	"errors"

	"github.com/rmaciel/atendimento/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	mongoDatabase            = "atendimento"
	mongoCustomersCollection = "customers"
)

type mongoCustomerRepository struct {
	client *mongo.Client
}

// NewMongoCustomerRepository builds mongodb customer repository
func NewMongoCustomerRepository(client *mongo.Client) CustomerRepository {
	return &mongoCustomerRepository{client: client}
}

func (r *mongoCustomerRepository) collection() *mongo.Collection {
	return r.client.Database(mongoDatabase).Collection(mongoCustomersCollection)
}

func (r *mongoCustomerRepository) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	var c model.Customer
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *mongoCustomerRepository) FindAll(ctx context.Context) ([]*model.Customer, error) {
	cursor, err := r.collection().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	customers := make([]*model.Customer, 0)
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *mongoCustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	if _, err := r.collection().InsertOne(ctx, c); err != nil {
		return err
	}
	return nil
}

func (r *mongoCustomerRepository) CreateAll(ctx context.Context, customers []*model.Customer) error {
	docs := make([]any, 0, len(customers))
	for _, c := range customers {
		docs = append(docs, c)
	}

	if _, err := r.collection().InsertMany(ctx, docs); err != nil {
		return err
	}
	return nil
}

func (r *mongoCustomerRepository) Update(ctx context.Context, c *model.Customer) error {
	if _, err := r.collection().ReplaceOne(ctx, bson.M{"_id": c.ID}, c); err != nil {
		return err
	}
	return nil
}

func (r *mongoCustomerRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.collection().DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return err
	}
	return nil
}
