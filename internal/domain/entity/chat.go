package entity

import "time"

// Chat canal de mensajes de un Link aprobado. Único por (SupplierID, ConsumerID).
type Chat struct {
	ID         string
	SupplierID string
	ConsumerID string
	CreatedAt  time.Time
}

// HasParticipant informa si principalID es una de las dos partes del chat.
func (c *Chat) HasParticipant(principalID string) bool {
	return principalID != "" && (principalID == c.SupplierID || principalID == c.ConsumerID)
}

// Message entrada inmutable de un chat.
// SenderID es el principal efectivo (supplier_id o consumer_id del chat);
// AuthorID el usuario concreto que escribió (difiere para delegados).
type Message struct {
	ID        string
	ChatID    string
	SenderID  string
	AuthorID  string
	Content   string
	CreatedAt time.Time
}
