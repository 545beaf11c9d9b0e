package db

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.vocdoni.io/dvote/log"
)

// Config holds the settings required to reach the MongoDB service. Username
// and Password are optional but must be provided together.
type Config struct {
	MongoURL string
	Database string
	Username string
	Password string
}

// MongoStorage uses an external MongoDB service for storing the portal
// content and the admin accounts. The connection is established lazily on
// the first operation and reused for the lifetime of the process.
type MongoStorage struct {
	conf      Config
	connLock  sync.Mutex
	connected atomic.Bool
	keysLock  sync.RWMutex

	DBClient *mongo.Client
	database string

	users        *mongo.Collection
	members      *mongo.Collection
	volunteers   *mongo.Collection
	campaigns    *mongo.Collection
	certificates *mongo.Collection
	gallery      *mongo.Collection
	donators     *mongo.Collection
	contacts     *mongo.Collection
	newsletter   *mongo.Collection
	activities   *mongo.Collection
	migrations   *mongo.Collection
}

// New validates the configuration and returns a storage handle. It does not
// connect to the database, the first operation (or an explicit call to
// Connect) does.
func New(conf *Config) (*MongoStorage, error) {
	if conf == nil {
		return nil, fmt.Errorf("%w: missing mongo settings", ErrConfiguration)
	}
	if conf.MongoURL == "" {
		return nil, fmt.Errorf("%w: mongo URL is not defined", ErrConfiguration)
	}
	if conf.Database == "" {
		return nil, fmt.Errorf("%w: mongo database is not defined", ErrConfiguration)
	}
	if (conf.Username == "") != (conf.Password == "") {
		return nil, fmt.Errorf("%w: mongo credentials are incomplete", ErrConfiguration)
	}
	return &MongoStorage{
		conf:     *conf,
		database: conf.Database,
	}, nil
}

// Connect establishes the connection to the database, creates the missing
// collections and applies the pending migrations. Once connected, further
// calls are no-ops. A failed attempt leaves the storage disconnected and is
// returned wrapped in ErrConnection, the next call will try again.
func (ms *MongoStorage) Connect(ctx context.Context) error {
	if ms.connected.Load() {
		return nil
	}
	ms.connLock.Lock()
	defer ms.connLock.Unlock()
	if ms.connected.Load() {
		return nil
	}
	log.Infow("connecting to mongodb", "database", ms.database)
	// preparing connection
	opts := options.Client()
	opts.ApplyURI(ms.conf.MongoURL)
	opts.SetMaxConnecting(200)
	opts.SetConnectTimeout(connectTimeout)
	if ms.conf.Username != "" {
		opts.SetAuth(options.Credential{
			Username: ms.conf.Username,
			Password: ms.conf.Password,
		})
	}
	connCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	client, err := mongo.Connect(connCtx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	// check if the connection is successful
	if err := client.Ping(connCtx, readpref.Primary()); err != nil {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warnw("error disconnecting from mongodb", "error", err)
		}
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	ms.DBClient = client
	ms.initCollections()
	if err := ms.RunMigrationsUp(); err != nil {
		ms.DBClient = nil
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warnw("error disconnecting from mongodb", "error", err)
		}
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	ms.connected.Store(true)
	log.Infow("connected to mongodb", "database", ms.database)
	return nil
}

// begin connects the storage if needed and returns a context bounded by the
// default timeout. Every storage method starts with it.
func (ms *MongoStorage) begin() (context.Context, context.CancelFunc, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	if err := ms.Connect(ctx); err != nil {
		cancel()
		return nil, nil, err
	}
	return ctx, cancel, nil
}

// Connected reports whether the storage holds an open connection.
func (ms *MongoStorage) Connected() bool {
	return ms.connected.Load()
}

func (ms *MongoStorage) Close() {
	ms.connLock.Lock()
	defer ms.connLock.Unlock()
	if !ms.connected.Load() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	if err := ms.DBClient.Disconnect(ctx); err != nil {
		log.Warn(err)
	}
	ms.connected.Store(false)
}

// Reset drops every collection of the database and runs the migrations
// again. It is meant for tests.
func (ms *MongoStorage) Reset() error {
	ctx, cancel, err := ms.begin()
	if err != nil {
		return err
	}
	defer cancel()
	log.Infof("resetting database")
	ms.keysLock.Lock()
	defer ms.keysLock.Unlock()
	if err := ms.DBClient.Database(ms.database).Drop(ctx); err != nil {
		return err
	}
	ms.initCollections()
	return ms.RunMigrationsUp()
}

// String returns a JSON dump of the whole portal, see Dump.
func (ms *MongoStorage) String() string {
	const contextTimeout = 30 * time.Second
	ms.keysLock.RLock()
	defer ms.keysLock.RUnlock()

	ctx, cancel := context.WithTimeout(context.Background(), contextTimeout)
	defer cancel()
	if err := ms.Connect(ctx); err != nil {
		log.Warn(err)
		return "{}"
	}
	var dump Dump
	errs := []error{
		exportCollection(ctx, ms.users, &dump.Users),
		exportCollection(ctx, ms.members, &dump.Members),
		exportCollection(ctx, ms.volunteers, &dump.Volunteers),
		exportCollection(ctx, ms.campaigns, &dump.Campaigns),
		exportCollection(ctx, ms.certificates, &dump.Certificates),
		exportCollection(ctx, ms.gallery, &dump.Gallery),
		exportCollection(ctx, ms.donators, &dump.Donators),
		exportCollection(ctx, ms.contacts, &dump.Contacts),
		exportCollection(ctx, ms.newsletter, &dump.Newsletter),
		exportCollection(ctx, ms.activities, &dump.Activities),
	}
	for _, err := range errs {
		if err != nil {
			log.Warn(err)
		}
	}
	data, err := json.Marshal(&dump)
	if err != nil {
		log.Warn(err)
		return "{}"
	}
	return string(data)
}

// Import upserts, by id, the documents of a dump produced by String.
// Documents that can not be stored are logged and skipped.
func (ms *MongoStorage) Import(jsonData []byte) error {
	ms.keysLock.Lock()
	defer ms.keysLock.Unlock()

	log.Infof("importing database")
	var dump Dump
	if err := json.Unmarshal(jsonData, &dump); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidData, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()
	if err := ms.Connect(ctx); err != nil {
		return err
	}
	importCollection(ctx, ms.users, dump.Users)
	importCollection(ctx, ms.members, dump.Members)
	importCollection(ctx, ms.volunteers, dump.Volunteers)
	importCollection(ctx, ms.campaigns, dump.Campaigns)
	importCollection(ctx, ms.certificates, dump.Certificates)
	importCollection(ctx, ms.gallery, dump.Gallery)
	importCollection(ctx, ms.donators, dump.Donators)
	importCollection(ctx, ms.contacts, dump.Contacts)
	importCollection(ctx, ms.newsletter, dump.Newsletter)
	// the singleton key is not part of the JSON document
	for i := range dump.Activities {
		dump.Activities[i].Singleton = activitiesSingletonKey
	}
	importCollection(ctx, ms.activities, dump.Activities)
	log.Infof("imported database!")
	return nil
}

func exportCollection[T any](ctx context.Context, coll *mongo.Collection, out *[]T) error {
	cur, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("export %s: %w", coll.Name(), err)
	}
	if err := cur.All(ctx, out); err != nil {
		return fmt.Errorf("export %s: %w", coll.Name(), err)
	}
	return nil
}

func importCollection[T any](ctx context.Context, coll *mongo.Collection, docs []T) {
	log.Infow("importing collection", "collection", coll.Name(), "count", len(docs))
	opts := options.Replace().SetUpsert(true)
	for _, doc := range docs {
		raw, err := bson.Marshal(doc)
		if err != nil {
			log.Warnw("error encoding document", "collection", coll.Name(), "error", err)
			continue
		}
		id := bson.Raw(raw).Lookup("_id")
		if id.IsZero() {
			_, err = coll.InsertOne(ctx, raw)
		} else {
			_, err = coll.ReplaceOne(ctx, bson.M{"_id": id}, raw, opts)
		}
		if err != nil {
			log.Warnw("error importing document", "collection", coll.Name(), "error", err)
		}
	}
}
