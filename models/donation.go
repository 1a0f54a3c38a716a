package models

// Donation is a recorded gift. No payment gateway is involved; donations are
// stored as already settled unless the caller says otherwise.
type Donation struct {
	Base         `bson:",inline"`
	FirstName    string         `bson:"firstName" json:"firstName"`
	LastName     string         `bson:"lastName" json:"lastName"`
	Email        string         `bson:"email" json:"email"`
	Phone        string         `bson:"phone,omitempty" json:"phone,omitempty"`
	DonationType DonationType   `bson:"donationType" json:"donationType"`
	Amount       float64        `bson:"amount" json:"amount"`
	Campaign     string         `bson:"campaign" json:"campaign"`
	Status       DonationStatus `bson:"status" json:"status"`
}

func NewDonation() Donation {
	return Donation{DonationType: DonationOneTime, Status: DonationCompleted}
}

func (d *Donation) DonorName() string {
	if d.LastName == "" {
		return d.FirstName
	}
	return d.FirstName + " " + d.LastName
}
