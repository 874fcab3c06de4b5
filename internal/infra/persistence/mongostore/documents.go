package mongostore

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	domcategory "example.com/shopfront/internal/domain/category"
	domproduct "example.com/shopfront/internal/domain/product"
	domuser "example.com/shopfront/internal/domain/user"
)

// bsonTime rounds t down to the millisecond precision a BSON date keeps, so
// what Create returns equals what a later read decodes.
func bsonTime(t time.Time) time.Time {
	return t.Truncate(time.Millisecond).UTC()
}

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Role      string             `bson:"role"`
	IsActive  bool               `bson:"isActive"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func newUserDocument(u *domuser.User) userDocument {
	return userDocument{
		Name:      u.Name,
		Email:     domuser.NormalizeEmail(u.Email),
		Password:  u.PasswordHash,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: bsonTime(u.CreatedAt),
	}
}

func (d userDocument) toDomain() *domuser.User {
	return &domuser.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		Role:         domuser.Role(d.Role),
		IsActive:     d.IsActive,
		CreatedAt:    d.CreatedAt,
	}
}

type categoryDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	NameKey       string             `bson:"nameKey"`
	Subcategories []string           `bson:"subcategories"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

func newCategoryDocument(c *domcategory.Category) categoryDocument {
	subs := c.Subcategories
	if subs == nil {
		subs = []string{}
	}
	return categoryDocument{
		Name:          c.Name,
		NameKey:       domcategory.NameKey(c.Name),
		Subcategories: subs,
		CreatedAt:     bsonTime(c.CreatedAt),
		UpdatedAt:     bsonTime(c.UpdatedAt),
	}
}

func (d categoryDocument) toDomain() *domcategory.Category {
	return &domcategory.Category{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		Subcategories: d.Subcategories,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type productDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Category    string             `bson:"category"`
	Merchant    primitive.ObjectID `bson:"merchant"`
	IsActive    bool               `bson:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func newProductDocument(p *domproduct.Product) productDocument {
	merchant, _ := parseID(p.MerchantID)
	return productDocument{
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Merchant:    merchant,
		IsActive:    p.IsActive,
		CreatedAt:   bsonTime(p.CreatedAt),
		UpdatedAt:   bsonTime(p.UpdatedAt),
	}
}

func (d productDocument) toDomain() *domproduct.Product {
	return &domproduct.Product{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		Category:    d.Category,
		MerchantID:  d.Merchant.Hex(),
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
