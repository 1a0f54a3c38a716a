package dto

import models "github.com/phillip/ngo-portal-go/models"

// VolunteerInput is the public volunteer application. Status is not part of
// it; see VolunteerStatusInput.
type VolunteerInput struct {
	Name       *string `form:"name" json:"name" binding:"omitempty,max=100"`
	Email      *string `form:"email" json:"email" binding:"omitempty,email"`
	Phone      *string `form:"phone" json:"phone" binding:"omitempty,max=20"`
	Area       *string `form:"area" json:"area" binding:"omitempty,max=100"`
	Experience *string `form:"experience" json:"experience" binding:"omitempty,max=2000"`
}

func (in *VolunteerInput) Validate(op Op, _ Files) error {
	return finish(need(op,
		str("name", in.Name),
		str("email", in.Email),
		str("phone", in.Phone),
		str("area", in.Area),
		str("experience", in.Experience),
	))
}

func (in *VolunteerInput) Apply(v *models.Volunteer, _ Uploaded) error {
	trimmed(&v.Name, in.Name)
	trimmed(&v.Email, in.Email)
	trimmed(&v.Phone, in.Phone)
	trimmed(&v.Area, in.Area)
	assign(&v.Experience, in.Experience)
	return nil
}

// VolunteerStatusInput is the only way an admin edits a volunteer.
type VolunteerStatusInput struct {
	Status *string `form:"status" json:"status"`
}

func (in *VolunteerStatusInput) Validate(_ Op, _ Files) error {
	verr := need(Create, str("status", in.Status))
	if given(in.Status) && !models.VolunteerStatus(*in.Status).Valid() {
		verr.Add("status", "status must be one of pending, reviewed, contacted, rejected, accepted, active")
	}
	return finish(verr)
}

func (in *VolunteerStatusInput) Apply(v *models.Volunteer, _ Uploaded) error {
	v.Status = models.VolunteerStatus(*in.Status)
	return nil
}

type DonationInput struct {
	FirstName    *string  `form:"firstName" json:"firstName" binding:"omitempty,max=100"`
	LastName     *string  `form:"lastName" json:"lastName" binding:"omitempty,max=100"`
	Email        *string  `form:"email" json:"email" binding:"omitempty,email"`
	Phone        *string  `form:"phone" json:"phone" binding:"omitempty,max=20"`
	DonationType *string  `form:"donationType" json:"donationType"`
	Amount       *float64 `form:"amount" json:"amount" binding:"omitempty,gt=0"`
	Campaign     *string  `form:"campaign" json:"campaign" binding:"omitempty,max=200"`
	Status       *string  `form:"status" json:"status"`
}

func (in *DonationInput) Validate(op Op, _ Files) error {
	verr := need(op,
		str("firstName", in.FirstName),
		str("lastName", in.LastName),
		str("email", in.Email),
		set("amount", in.Amount),
		str("campaign", in.Campaign),
	)
	if in.Amount != nil && *in.Amount <= 0 {
		verr.Add("amount", "amount must be greater than 0")
	}
	if given(in.DonationType) && !models.DonationType(*in.DonationType).Valid() {
		verr.Add("donationType", "donationType must be one-time or monthly")
	}
	if given(in.Status) && !models.DonationStatus(*in.Status).Valid() {
		verr.Add("status", "status must be one of pending, completed, failed")
	}
	return finish(verr)
}

func (in *DonationInput) Apply(d *models.Donation, _ Uploaded) error {
	trimmed(&d.FirstName, in.FirstName)
	trimmed(&d.LastName, in.LastName)
	trimmed(&d.Email, in.Email)
	trimmed(&d.Phone, in.Phone)
	if given(in.DonationType) {
		d.DonationType = models.DonationType(*in.DonationType)
	}
	assign(&d.Amount, in.Amount)
	trimmed(&d.Campaign, in.Campaign)
	if given(in.Status) {
		d.Status = models.DonationStatus(*in.Status)
	}
	return nil
}

// PublicDonationInput is what an anonymous donor may send: DonationInput
// without status.
type PublicDonationInput struct {
	FirstName    *string  `form:"firstName" json:"firstName" binding:"omitempty,max=100"`
	LastName     *string  `form:"lastName" json:"lastName" binding:"omitempty,max=100"`
	Email        *string  `form:"email" json:"email" binding:"omitempty,email"`
	Phone        *string  `form:"phone" json:"phone" binding:"omitempty,max=20"`
	DonationType *string  `form:"donationType" json:"donationType"`
	Amount       *float64 `form:"amount" json:"amount" binding:"omitempty,gt=0"`
	Campaign     *string  `form:"campaign" json:"campaign" binding:"omitempty,max=200"`
}

func (in *PublicDonationInput) full() *DonationInput {
	return &DonationInput{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		DonationType: in.DonationType,
		Amount:       in.Amount,
		Campaign:     in.Campaign,
	}
}

func (in *PublicDonationInput) Validate(op Op, files Files) error { return in.full().Validate(op, files) }

func (in *PublicDonationInput) Apply(d *models.Donation, up Uploaded) error {
	return in.full().Apply(d, up)
}

type MessageInput struct {
	Name     *string `form:"name" json:"name" binding:"omitempty,max=100"`
	Email    *string `form:"email" json:"email" binding:"omitempty,email"`
	Phone    *string `form:"phone" json:"phone" binding:"omitempty,max=20"`
	Subject  *string `form:"subject" json:"subject" binding:"omitempty,max=200"`
	Message  *string `form:"message" json:"message" binding:"omitempty,max=5000"`
	Category *string `form:"category" json:"category" binding:"omitempty,max=50"`
	Read     *bool   `form:"read" json:"read"`
}

func (in *MessageInput) Validate(op Op, _ Files) error {
	return finish(need(op,
		str("name", in.Name),
		str("email", in.Email),
		str("phone", in.Phone),
		str("subject", in.Subject),
		str("message", in.Message),
	))
}

func (in *MessageInput) Apply(m *models.Message, _ Uploaded) error {
	trimmed(&m.Name, in.Name)
	trimmed(&m.Email, in.Email)
	trimmed(&m.Phone, in.Phone)
	trimmed(&m.Subject, in.Subject)
	assign(&m.Message, in.Message)
	if in.Category != nil && *in.Category != "" {
		m.Category = *in.Category
	}
	assign(&m.Read, in.Read)
	return nil
}

// PublicMessageInput is the contact form: MessageInput without the read flag.
type PublicMessageInput struct {
	Name     *string `form:"name" json:"name" binding:"omitempty,max=100"`
	Email    *string `form:"email" json:"email" binding:"omitempty,email"`
	Phone    *string `form:"phone" json:"phone" binding:"omitempty,max=20"`
	Subject  *string `form:"subject" json:"subject" binding:"omitempty,max=200"`
	Message  *string `form:"message" json:"message" binding:"omitempty,max=5000"`
	Category *string `form:"category" json:"category" binding:"omitempty,max=50"`
}

func (in *PublicMessageInput) full() *MessageInput {
	return &MessageInput{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Subject:  in.Subject,
		Message:  in.Message,
		Category: in.Category,
	}
}

func (in *PublicMessageInput) Validate(op Op, files Files) error { return in.full().Validate(op, files) }

func (in *PublicMessageInput) Apply(m *models.Message, up Uploaded) error {
	return in.full().Apply(m, up)
}

// MessageReadInput toggles the read flag; an empty body marks as read.
type MessageReadInput struct {
	Read *bool `form:"read" json:"read"`
}

func (in *MessageReadInput) Validate(_ Op, _ Files) error { return nil }

func (in *MessageReadInput) Apply(m *models.Message, _ Uploaded) error {
	m.Read = in.Read == nil || *in.Read
	return nil
}
