package domain

type RentRequestStatus string

const (
	RentRequestStatusOpen     RentRequestStatus = "OPEN"
	RentRequestStatusAccepted RentRequestStatus = "ACCEPTED"
	RentRequestStatusRejected RentRequestStatus = "REJECTED"
)

// RentRequest is a renter's proposal to book a product for a period.
// It starts OPEN and is moved exactly once to ACCEPTED or REJECTED by
// the product owner.
type RentRequest struct {
	ID          string            `bson:"_id,omitempty" json:"id"`
	ProductID   string            `bson:"requestedProductId" json:"requestedProductId"`
	RequesterID string            `bson:"requesterUserId" json:"requesterUserId"`
	ReceiverID  string            `bson:"receiverUserId" json:"receiverUserId"`
	Period      DateRange         `bson:"period" json:"period"`
	Status      RentRequestStatus `bson:"status" json:"status"`
}
