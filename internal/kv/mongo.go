package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on a MongoDB collection. Each document is
// {_id: <key>, value: <record>} so records stay queryable from the shell.
type MongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore creates a MongoStore on the "kv" collection of db.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{collection: db.Collection("kv")}
}

func (s *MongoStore) Get(ctx context.Context, key string) ([]byte, error) {
	var doc bson.Raw
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return valueToJSON(doc)
}

func (s *MongoStore) Set(ctx context.Context, key string, value []byte) error {
	body, err := jsonToValue(value)
	if err != nil {
		return fmt.Errorf("convert value for %s: %w", key, err)
	}
	doc := append(bson.D{{Key: "_id", Value: key}}, body...)
	_, err = s.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	return err
}

func (s *MongoStore) Delete(ctx context.Context, key string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

func (s *MongoStore) ScanPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	filter := bson.M{"_id": bson.M{"$regex": "^" + regexp.QuoteMeta(prefix)}}
	cursor, err := s.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := make([]Entry, 0)
	for cursor.Next(ctx) {
		doc := cursor.Current
		key, ok := doc.Lookup("_id").StringValueOK()
		if !ok {
			continue
		}
		value, err := valueToJSON(doc)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Key: key, Value: value})
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// jsonToValue parses a JSON record into a {value: <record>} document body.
func jsonToValue(value []byte) (bson.D, error) {
	var body bson.D
	wrapped := append(append([]byte(`{"value":`), value...), '}')
	if err := bson.UnmarshalExtJSON(wrapped, false, &body); err != nil {
		return nil, err
	}
	return body, nil
}

// valueToJSON renders the document's "value" field back to plain JSON.
func valueToJSON(doc bson.Raw) ([]byte, error) {
	out, err := bson.MarshalExtJSON(bson.D{{Key: "v", Value: doc.Lookup("value")}}, false, false)
	if err != nil {
		return nil, err
	}
	var wrapper struct {
		V json.RawMessage `json:"v"`
	}
	if err := json.Unmarshal(out, &wrapper); err != nil {
		return nil, err
	}
	return wrapper.V, nil
}
