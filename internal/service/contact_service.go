package service

import (
	"context"
	"fmt"

	"roomnest/internal/model"
	"roomnest/internal/repository"
)

// ContactService stores messages from the public contact form.
type ContactService interface {
	SubmitMessage(ctx context.Context, name, email, message string) (*model.ContactMessage, error)
}

type contactService struct {
	contactRepo repository.ContactMessageRepository
}

// NewContactService creates a new contact service.
func NewContactService(contactRepo repository.ContactMessageRepository) ContactService {
	return &contactService{contactRepo: contactRepo}
}

// SubmitMessage persists a contact message. Field validation happens at the
// handler; this only guards the store call.
func (s *contactService) SubmitMessage(ctx context.Context, name, email, message string) (*model.ContactMessage, error) {
	msg := &model.ContactMessage{
		Name:    name,
		Email:   email,
		Message: message,
	}
	if err := s.contactRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return msg, nil
}
