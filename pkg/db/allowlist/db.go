package allowlist

import (
	"context"
	"time"

	"github.com/P2B-ARIF/facebook-info-api-backend/pkg/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	COLLECTION_NAME_ALLOWED_IPS = "allowedIPs"
)

type AllowlistDBService struct {
	DBClient     *mongo.Client
	timeout      int
	DBNamePrefix string
}

func NewAllowlistDBService(configs db.DBConfig) (*AllowlistDBService, error) {
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

	alDBSc := &AllowlistDBService{
		DBClient:     dbClient,
		timeout:      configs.Timeout,
		DBNamePrefix: configs.DBNamePrefix,
	}

	if err := alDBSc.CreateDefaultIndexes(); err != nil {
		return nil, err
	}
	return alDBSc, nil
}

func (dbService *AllowlistDBService) getDBName() string {
	return dbService.DBNamePrefix + "fb_details_creator"
}

func (dbService *AllowlistDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *AllowlistDBService) collectionAllowedIPs() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_ALLOWED_IPS)
}

func (dbService *AllowlistDBService) CreateDefaultIndexes() error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionAllowedIPs().Indexes().CreateMany(
		ctx, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "ip", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys: bson.D{{Key: "createdAt", Value: 1}},
			},
		},
	)
	return err
}
