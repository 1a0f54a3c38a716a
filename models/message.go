package models

const DefaultMessageCategory = "General"

// Message is a contact-form submission.
type Message struct {
	Base     `bson:",inline"`
	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
	Phone    string `bson:"phone" json:"phone"`
	Subject  string `bson:"subject" json:"subject"`
	Message  string `bson:"message" json:"message"`
	Category string `bson:"category" json:"category"`
	Read     bool   `bson:"read" json:"read"`
}

func NewMessage() Message { return Message{Category: DefaultMessageCategory} }
