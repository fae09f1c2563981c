package domain

// User is a marketplace profile. The ID equals the subject of the
// external auth token, it is never generated by this service.
type User struct {
	ID         string  `bson:"_id,omitempty" json:"id"`
	Email      string  `bson:"email" json:"email"`
	FirstName  string  `bson:"firstName" json:"firstName"`
	LastName   string  `bson:"lastName" json:"lastName"`
	Street     string  `bson:"street" json:"street"`
	City       string  `bson:"city" json:"city"`
	PostalCode string  `bson:"postalCode" json:"postalCode"`
	Rating     float64 `bson:"rating" json:"rating"`
}
