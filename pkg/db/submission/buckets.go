package submission

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrDuplicateSubmission = errors.New("submission with same mail or 2FA already exists for this day")
	ErrBucketNotFound      = errors.New("no submissions for this day")
	ErrInvalidMatchField   = errors.New("invalid match field")
)

// Fields submissions can be matched on for approval and deletion.
var matchFields = map[string]struct{}{
	"mail":  {},
	"uid":   {},
	"twoFA": {},
}

// duplicateGuard builds the $elemMatch condition that detects an already
// present submission with the same mail or 2FA secret. Empty fields are
// excluded, otherwise records without a mail would collide with each other.
func duplicateGuard(rec Submission) bson.M {
	or := []bson.M{}
	if rec.Mail != "" {
		or = append(or, bson.M{"mail": rec.Mail})
	}
	if rec.TwoFA != "" {
		or = append(or, bson.M{"twoFA": rec.TwoFA})
	}
	if len(or) == 0 {
		return nil
	}
	return bson.M{"$elemMatch": bson.M{"$or": or}}
}

// Append adds the submission to the day's bucket, creating the bucket if the
// day has none yet. The push is guarded against duplicates and the create
// against a concurrent first append of the same day (unique date index).
func (dbService *SubmissionDBService) Append(domain string, date string, rec Submission) error {
	yearMonth, err := YearMonthOf(date)
	if err != nil {
		return err
	}

	if err := dbService.ensureDateIndex(domain, yearMonth); err != nil {
		return err
	}

	pushed, err := dbService.guardedPush(domain, yearMonth, date, rec)
	if err != nil {
		return err
	}
	if pushed {
		return nil
	}

	// No match means either the day has no bucket yet or the record is a
	// duplicate. Try the create, the unique date index settles which one.
	ctx, cancel := dbService.getContext()
	defer cancel()

	bucket := DayBucket{
		Date:        date,
		Submissions: []Submission{rec},
		UpdatedAt:   time.Now(),
	}
	_, err = dbService.collectionSubmissions(domain, yearMonth).InsertOne(ctx, bucket)
	if err == nil {
		return nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}

	// bucket is there after all: either we lost the create race or the
	// record was a duplicate all along, the retried push tells them apart
	pushed, err = dbService.guardedPush(domain, yearMonth, date, rec)
	if err != nil {
		return err
	}
	if !pushed {
		return ErrDuplicateSubmission
	}
	return nil
}

func (dbService *SubmissionDBService) guardedPush(domain string, yearMonth string, date string, rec Submission) (bool, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"date": date}
	if guard := duplicateGuard(rec); guard != nil {
		filter["submissions"] = bson.M{"$not": guard}
	}
	update := bson.M{
		"$push": bson.M{"submissions": rec},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	res, err := dbService.collectionSubmissions(domain, yearMonth).UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (dbService *SubmissionDBService) GetBucket(domain string, date string) (bucket DayBucket, err error) {
	yearMonth, err := YearMonthOf(date)
	if err != nil {
		return bucket, err
	}

	ctx, cancel := dbService.getContext()
	defer cancel()

	err = dbService.collectionSubmissions(domain, yearMonth).FindOne(ctx, bson.M{"date": date}).Decode(&bucket)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return bucket, ErrBucketNotFound
		}
		return bucket, err
	}
	return bucket, nil
}

// MarkApproved flips approved on every submission of the day whose match
// field is in values. Returns how many submissions carry the approval
// afterwards, counted with a read-back since the array update only reports
// touched documents.
func (dbService *SubmissionDBService) MarkApproved(domain string, date string, matchField string, values []string) (int64, error) {
	if _, ok := matchFields[matchField]; !ok {
		return 0, ErrInvalidMatchField
	}
	yearMonth, err := YearMonthOf(date)
	if err != nil {
		return 0, err
	}

	ctx, cancel := dbService.getContext()
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"submissions.$[elem].approved": true,
			"updatedAt":                    time.Now(),
		},
	}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"elem." + matchField: bson.M{"$in": values}},
		},
	})

	res, err := dbService.collectionSubmissions(domain, yearMonth).UpdateOne(ctx, bson.M{"date": date}, update, opts)
	if err != nil {
		return 0, err
	}
	if res.MatchedCount < 1 {
		return 0, ErrBucketNotFound
	}

	return dbService.countApproved(domain, yearMonth, date, matchField, values)
}

func (dbService *SubmissionDBService) countApproved(domain string, yearMonth string, date string, matchField string, values []string) (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{"date": date}},
		{"$unwind": "$submissions"},
		{"$match": bson.M{"submissions.approved": true}},
		{"$match": bson.M{"submissions." + matchField: bson.M{"$in": values}}},
		{"$count": "count"},
	}

	cursor, err := dbService.collectionSubmissions(domain, yearMonth).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Count int64 `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) < 1 {
		return 0, nil
	}
	return results[0].Count, nil
}

// DeleteSubmissions removes matching submissions from the day's bucket,
// admin only (instagram path).
func (dbService *SubmissionDBService) DeleteSubmissions(domain string, date string, matchField string, values []string) error {
	if _, ok := matchFields[matchField]; !ok {
		return ErrInvalidMatchField
	}
	yearMonth, err := YearMonthOf(date)
	if err != nil {
		return err
	}

	ctx, cancel := dbService.getContext()
	defer cancel()

	update := bson.M{
		"$pull": bson.M{"submissions": bson.M{matchField: bson.M{"$in": values}}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	res, err := dbService.collectionSubmissions(domain, yearMonth).UpdateOne(ctx, bson.M{"date": date}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount < 1 {
		return ErrBucketNotFound
	}
	return nil
}
