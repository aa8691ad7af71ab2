package user

import (
	"errors"
	"time"

	userTypes "github.com/P2B-ARIF/facebook-info-api-backend/pkg/user-management/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrUserExists    = errors.New("user already exists")
	ErrUserNotFound  = errors.New("user not found")
	ErrSessionActive = errors.New("session already in use")
)

func (dbService *UserDBService) CreateUser(user userTypes.User) (string, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionUsers().InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrUserExists
		}
		return "", err
	}
	id := res.InsertedID.(primitive.ObjectID)
	return id.Hex(), nil
}

func (dbService *UserDBService) GetUserByEmail(email string) (user userTypes.User, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	err = dbService.collectionUsers().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user, ErrUserNotFound
		}
		return user, err
	}
	return user, nil
}

// ClaimSession atomically moves the account's session state from available to
// in use. A login racing against another login cannot claim the same account
// twice: the filter only matches while the state is still available.
func (dbService *UserDBService) ClaimSession(email string) (user userTypes.User, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"email":        email,
		"sessionState": userTypes.SESSION_STATE_AVAILABLE,
	}
	update := bson.M{
		"$set": bson.M{
			"sessionState": userTypes.SESSION_STATE_IN_USE,
			"lastLoginAt":  time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	err = dbService.collectionUsers().FindOneAndUpdate(ctx, filter, update, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user, ErrSessionActive
		}
		return user, err
	}
	return user, nil
}

// SetSessionState forces the account's session state, used by the admin
// block-user and to-active routes.
func (dbService *UserDBService) SetSessionState(email string, state string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionUsers().UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"sessionState": state}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount < 1 {
		return ErrUserNotFound
	}
	return nil
}

// ExpireMemberships flips membership to false on accounts created before the
// given time. Age is measured from creation, never from last activity.
func (dbService *UserDBService) ExpireMemberships(olderThan time.Time) (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionUsers().UpdateMany(ctx,
		bson.M{
			"createdAt":  bson.M{"$lt": olderThan},
			"membership": true,
		},
		bson.M{"$set": bson.M{"membership": false}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
