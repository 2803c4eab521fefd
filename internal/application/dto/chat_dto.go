package dto

import "time"

// ChatResponse salida de un chat.
type ChatResponse struct {
	ID         string    `json:"id"`
	SupplierID string    `json:"supplier_id"`
	ConsumerID string    `json:"consumer_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// SendMessageRequest cuerpo alternativo al query param content.
// El contenido vacío lo rechaza el caso de uso, después de resolver el chat.
type SendMessageRequest struct {
	Content string `json:"content" validate:"max=4000"`
}

// MessageItem salida de un mensaje.
type MessageItem struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chat_id"`
	SenderID  string    `json:"sender_id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
