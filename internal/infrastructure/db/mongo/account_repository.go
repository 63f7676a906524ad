package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/account-service/internal/core/domain"
)

const (
	collectionAccounts = "accounts"
	accountSequence    = "accounts"
)

// AccountRepository implements ports.AccountRepository using MongoDB.
type AccountRepository struct {
	col *mongo.Collection
	ids *counters
	now func() time.Time
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{
		col: db.Collection(collectionAccounts),
		ids: newCounters(db),
		now: time.Now,
	}
}

type accountDoc struct {
	ID           int64          `bson:"_id"`
	Email        string         `bson:"email"`
	PasswordHash string         `bson:"password_hash"`
	Role         string         `bson:"role"`
	Deactivated  bool           `bson:"deactivated"`
	Profile      domain.Profile `bson:"profile"`
	CreatedAt    time.Time      `bson:"created_at"`
	UpdatedAt    time.Time      `bson:"updated_at"`
}

func toAccountDoc(a *domain.Account) accountDoc {
	return accountDoc{
		ID:           a.ID,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		Role:         string(a.Role),
		Deactivated:  a.Deactivated,
		Profile:      a.Profile,
		CreatedAt:    a.CreatedAt.UTC(),
		UpdatedAt:    a.UpdatedAt.UTC(),
	}
}

func (d accountDoc) toDomain() *domain.Account {
	return &domain.Account{
		ID:           d.ID,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         domain.Role(d.Role),
		Deactivated:  d.Deactivated,
		Profile:      d.Profile,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

// Create assigns the next account id and inserts the document. The unique
// email index turns a concurrent duplicate signup into domain.ErrEmailTaken.
func (r *AccountRepository) Create(ctx context.Context, a *domain.Account) (*domain.Account, error) {
	id, err := r.ids.next(ctx, accountSequence)
	if err != nil {
		return nil, err
	}

	doc := toAccountDoc(a)
	doc.ID = id
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, storeError("insert account", err, nil)
	}
	return doc.toDomain(), nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	var doc accountDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, storeError("find account", err, domain.ErrAccountNotFound)
	}
	return doc.toDomain(), nil
}

// UpdateProfile replaces the profile sub-document only.
func (r *AccountRepository) UpdateProfile(ctx context.Context, id int64, profile domain.Profile) (*domain.Account, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{
		"profile":    profile,
		"updated_at": r.now().UTC(),
	}}

	var doc accountDoc
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&doc); err != nil {
		return nil, storeError("update profile", err, domain.ErrAccountNotFound)
	}
	return doc.toDomain(), nil
}

// SetDeactivated flips the soft-delete flag only when the stored flag is the
// opposite of `to`. Deactivation additionally requires the stored role not
// to be admin, so a role change racing the transition cannot slip through.
func (r *AccountRepository) SetDeactivated(ctx context.Context, id int64, to bool) (bool, error) {
	filter := bson.M{"_id": id, "deactivated": !to}
	if to {
		filter["role"] = bson.M{"$ne": string(domain.RoleAdmin)}
	}
	update := bson.M{"$set": bson.M{
		"deactivated": to,
		"updated_at":  r.now().UTC(),
	}}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, storeError("set deactivated", err, nil)
	}
	return res.ModifiedCount == 1, nil
}

func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storeError("delete account", err, nil)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// DeleteDeactivated removes the account in the same operation that checks it
// is still deactivated and not an admin.
func (r *AccountRepository) DeleteDeactivated(ctx context.Context, id int64) (bool, error) {
	res, err := r.col.DeleteOne(ctx, deactivatedMemberFilter(id))
	if err != nil {
		return false, storeError("delete deactivated account", err, nil)
	}
	return res.DeletedCount == 1, nil
}

func deactivatedMemberFilter(id int64) bson.M {
	return bson.M{
		"_id":         id,
		"deactivated": true,
		"role":        bson.M{"$ne": string(domain.RoleAdmin)},
	}
}

// EnsureIndexes creates the unique, case-sensitive email index.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
