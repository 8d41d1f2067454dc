package models

// Client is a record of the clients collection, referenced by legacy bookings through clientId.
type Client struct {
	ID        string `bson:"id" firestore:"id" json:"id"`
	Name      string `bson:"name,omitempty" firestore:"name,omitempty" json:"name,omitempty"`
	FirstName string `bson:"firstName,omitempty" firestore:"firstName,omitempty" json:"firstName,omitempty"`
	LastName  string `bson:"lastName,omitempty" firestore:"lastName,omitempty" json:"lastName,omitempty"`
	Email     string `bson:"email,omitempty" firestore:"email,omitempty" json:"email,omitempty"`
	Phone     string `bson:"phone,omitempty" firestore:"phone,omitempty" json:"phone,omitempty"`
}
