package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/heronet/sellnet/internal/core/domain"
	"github.com/heronet/sellnet/internal/core/ports"
)

const (
	indexSupplierEmail    = "email_unique"
	indexSupplierUserName = "user_name_unique"
)

// SupplierRepository stores suppliers and their role assignments.
type SupplierRepository struct {
	suppliers *mongo.Collection
	links     *mongo.Collection
	roles     *mongo.Collection
}

func NewSupplierRepository(db *mongo.Database) *SupplierRepository {
	return &SupplierRepository{
		suppliers: db.Collection(collectionSuppliers),
		links:     db.Collection(collectionSupplierRoles),
		roles:     db.Collection(collectionRoles),
	}
}

type mongoSupplier struct {
	ID           string `bson:"_id"`
	Name         string `bson:"name"`
	UserName     string `bson:"user_name"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password_hash"`
	Phone        string `bson:"phone,omitempty"`
	City         string `bson:"city,omitempty"`
	Division     string `bson:"division,omitempty"`
	CreatedAt    int64  `bson:"created_at"`
}

type mongoSupplierRole struct {
	SupplierID string `bson:"supplier_id"`
	Role       string `bson:"role"`
	AssignedAt int64  `bson:"assigned_at"`
}

func toMongoSupplier(s *domain.Supplier) mongoSupplier {
	return mongoSupplier{
		ID:           s.ID,
		Name:         s.Name,
		UserName:     s.UserName,
		Email:        s.Email,
		PasswordHash: s.PasswordHash,
		Phone:        s.Phone,
		City:         s.City,
		Division:     s.Division,
		CreatedAt:    s.CreatedAt.Unix(),
	}
}

func (m mongoSupplier) toDomain() *domain.Supplier {
	return &domain.Supplier{
		ID:           m.ID,
		Name:         m.Name,
		UserName:     m.UserName,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Phone:        m.Phone,
		City:         m.City,
		Division:     m.Division,
		CreatedAt:    unixToTime(m.CreatedAt),
	}
}

func (r *SupplierRepository) Create(ctx context.Context, s *domain.Supplier) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.suppliers.InsertOne(ctx, toMongoSupplier(s)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), indexSupplierUserName) {
				return domain.ErrDuplicateUserName
			}
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepository) FindByID(ctx context.Context, id string) (*domain.Supplier, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *SupplierRepository) FindByEmail(ctx context.Context, email string) (*domain.Supplier, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *SupplierRepository) FindByUserName(ctx context.Context, userName string) (*domain.Supplier, error) {
	return r.findOne(ctx, bson.M{"user_name": userName})
}

func (r *SupplierRepository) findOne(ctx context.Context, filter bson.M) (*domain.Supplier, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ms mongoSupplier
	if err := r.suppliers.FindOne(ctx, filter).Decode(&ms); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrSupplierNotFound
		}
		return nil, fmt.Errorf("find supplier: %w", err)
	}
	return ms.toDomain(), nil
}

// List returns a page of suppliers ordered by registration time.
func (r *SupplierRepository) List(ctx context.Context, f ports.SupplierListFilter) ([]*domain.Supplier, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.ExcludeID != "" {
		filter["_id"] = bson.M{"$ne": f.ExcludeID}
	}

	total, err := r.suppliers.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count suppliers: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(skipFor(f.Page, f.PageSize)).
		SetLimit(int64(f.PageSize))

	cur, err := r.suppliers.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list suppliers: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoSupplier
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode suppliers: %w", err)
	}

	out := make([]*domain.Supplier, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, total, nil
}

// Delete removes the supplier and its role assignments.
func (r *SupplierRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.suppliers.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSupplierNotFound
	}

	if _, err := r.links.DeleteMany(ctx, bson.M{"supplier_id": id}); err != nil {
		return fmt.Errorf("delete supplier roles: %w", err)
	}
	return nil
}

// AddToRole links the supplier to an existing role. The role's stored
// spelling is used, whatever the caller's casing.
func (r *SupplierRepository) AddToRole(ctx context.Context, supplierID, role string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mr mongoRole
	if err := r.roles.FindOne(ctx, bson.M{"normalized_name": domain.NormalizeRole(role)}).Decode(&mr); err != nil {
		if isNoDocuments(err) {
			return domain.ErrRoleNotFound
		}
		return fmt.Errorf("find role: %w", err)
	}

	link := mongoSupplierRole{SupplierID: supplierID, Role: mr.Name, AssignedAt: time.Now().UnixNano()}
	if _, err := r.links.InsertOne(ctx, link); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyInRole
		}
		return fmt.Errorf("add to role: %w", err)
	}
	return nil
}

// GetRoles returns role names in assignment order.
func (r *SupplierRepository) GetRoles(ctx context.Context, supplierID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.links.Find(ctx, bson.M{"supplier_id": supplierID},
		options.Find().SetSort(bson.D{{Key: "assigned_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find roles: %w", err)
	}
	defer cur.Close(ctx)

	var links []mongoSupplierRole
	if err := cur.All(ctx, &links); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}

	roles := make([]string, 0, len(links))
	for _, l := range links {
		roles = append(roles, l.Role)
	}
	return roles, nil
}

// EnsureIndexes creates the unique indexes on suppliers and assignments.
func (r *SupplierRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.suppliers.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName(indexSupplierEmail)},
		{Keys: bson.D{{Key: "user_name", Value: 1}}, Options: options.Index().SetUnique(true).SetName(indexSupplierUserName)},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = r.links.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "supplier_id", Value: 1}, {Key: "role", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

// skipFor converts a 1-based page into a document offset.
func skipFor(page, size int) int64 {
	if page < 1 || size <= 0 {
		return 0
	}
	return int64((page - 1) * size)
}
