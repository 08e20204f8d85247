package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Supplier is a maintenance service or parts provider.
type Supplier struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	TaxID     string             `json:"tax_id,omitempty" bson:"tax_id,omitempty"`
	Specialty string             `json:"specialty" bson:"specialty"`
	Phone     string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Email     string             `json:"email,omitempty" bson:"email,omitempty"`
	Address   string             `json:"address,omitempty" bson:"address,omitempty"`
	Active    bool               `json:"active" bson:"active"`
}
