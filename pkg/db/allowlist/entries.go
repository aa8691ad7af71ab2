package allowlist

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrDuplicateIP = errors.New("ip already exists")
	ErrIPNotFound  = errors.New("ip not found")
)

type AllowlistEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	IP        string             `bson:"ip" json:"ip"`
	Name      string             `bson:"name" json:"name"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// AddEntry inserts a new allowlist entry. Uniqueness is enforced by the
// index on ip, so a concurrent add of the same IP cannot slip through.
func (dbService *AllowlistDBService) AddEntry(ip string, name string) (entry AllowlistEntry, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	entry = AllowlistEntry{
		IP:        ip,
		Name:      name,
		CreatedAt: time.Now(),
	}

	res, err := dbService.collectionAllowedIPs().InsertOne(ctx, entry)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return entry, ErrDuplicateIP
		}
		return entry, err
	}
	entry.ID = res.InsertedID.(primitive.ObjectID)
	return entry, nil
}

func (dbService *AllowlistDBService) RemoveEntry(ip string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionAllowedIPs().DeleteOne(ctx, bson.M{"ip": ip})
	if err != nil {
		return err
	}
	if res.DeletedCount < 1 {
		return ErrIPNotFound
	}
	return nil
}

func (dbService *AllowlistDBService) GetEntries() (entries []AllowlistEntry, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := dbService.collectionAllowedIPs().Find(ctx, bson.M{}, opts)
	if err != nil {
		return entries, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &entries)
	return entries, err
}

func (dbService *AllowlistDBService) IsIPAllowed(ip string) (bool, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	count, err := dbService.collectionAllowedIPs().CountDocuments(ctx, bson.M{"ip": ip})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteExpiredEntries removes every entry created before the given time.
func (dbService *AllowlistDBService) DeleteExpiredEntries(olderThan time.Time) (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionAllowedIPs().DeleteMany(ctx, bson.M{
		"createdAt": bson.M{"$lt": olderThan},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
