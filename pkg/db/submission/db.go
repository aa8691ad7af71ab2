package submission

import (
	"context"
	"sync"
	"time"

	"github.com/P2B-ARIF/facebook-info-api-backend/pkg/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Submission domains, each with its own set of month collections.
const (
	DOMAIN_FACEBOOK  = "facebook"
	DOMAIN_INSTAGRAM = "instagram"
)

type SubmissionDBService struct {
	DBClient     *mongo.Client
	timeout      int
	DBNamePrefix string

	indexedCollections sync.Map
}

func NewSubmissionDBService(configs db.DBConfig) (*SubmissionDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)
	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	err = dbClient.Ping(ctx, nil)
	defer conCancel()
	if err != nil {
		return nil, err
	}

	sDBSc := &SubmissionDBService{
		DBClient:     dbClient,
		timeout:      configs.Timeout,
		DBNamePrefix: configs.DBNamePrefix,
	}
	return sDBSc, nil
}

func (dbService *SubmissionDBService) getDBName() string {
	return dbService.DBNamePrefix + "fb_details_creator"
}

func (dbService *SubmissionDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

// collectionSubmissions returns the month partition of the given domain,
// e.g. facebook_2025-03. Month collections appear over time, so the unique
// index on date is ensured lazily on first use.
func (dbService *SubmissionDBService) collectionSubmissions(domain string, yearMonth string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(domain + "_" + yearMonth)
}

func (dbService *SubmissionDBService) ensureDateIndex(domain string, yearMonth string) error {
	key := domain + "_" + yearMonth
	if _, ok := dbService.indexedCollections.Load(key); ok {
		return nil
	}

	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionSubmissions(domain, yearMonth).Indexes().CreateOne(
		ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	)
	if err != nil {
		return err
	}
	dbService.indexedCollections.Store(key, struct{}{})
	return nil
}
