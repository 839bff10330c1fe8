package source

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/taskmap/pkg/errors"
	"github.com/matzehuels/taskmap/pkg/task"
)

// Default database and collection names.
const (
	DefaultDatabase   = "taskmap"
	DefaultCollection = "tasks"
)

// Mongo reads tasks from a MongoDB collection. Documents carry the task
// fields id, title, and dependencies; other fields are ignored.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// OpenMongo connects to uri and verifies the connection.
func OpenMongo(ctx context.Context, uri, database, collection string) (*Mongo, error) {
	if uri == "" {
		return nil, errors.New(errors.ErrCodeInvalidOption, "mongo uri is required")
	}
	if database == "" {
		database = DefaultDatabase
	}
	if collection == "" {
		collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidOption, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, err, "ping mongo")
	}
	return &Mongo{client: client, coll: client.Database(database).Collection(collection)}, nil
}

// Name implements Source.
func (m *Mongo) Name() string {
	return "mongo:" + m.coll.Database().Name() + "." + m.coll.Name()
}

// Tasks returns every document in insertion order.
func (m *Mongo) Tasks(ctx context.Context) ([]task.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := m.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, err, "query %s", m.Name())
	}
	tasks := []task.Task{}
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, err, "decode %s", m.Name())
	}
	return tasks, nil
}

// Replace overwrites the collection with tasks.
func (m *Mongo) Replace(ctx context.Context, tasks []task.Task) error {
	if _, err := m.coll.DeleteMany(ctx, bson.D{}); err != nil {
		return errors.Wrap(errors.ErrCodeSourceUnavailable, err, "clear %s", m.Name())
	}
	if len(tasks) == 0 {
		return nil
	}
	docs := make([]any, len(tasks))
	for i, t := range tasks {
		docs[i] = t
	}
	if _, err := m.coll.InsertMany(ctx, docs); err != nil {
		return errors.Wrap(errors.ErrCodeSourceUnavailable, err, "insert into %s", m.Name())
	}
	return nil
}

// Close disconnects the client.
func (m *Mongo) Close() error {
	return m.client.Disconnect(context.Background())
}
