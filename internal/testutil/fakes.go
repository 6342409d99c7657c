package testutil

import (
	"context"
	"errors"
	"path"
	"strings"
	"sync"

	"foodgram/internal/utils/mailing"
)

var ErrInjected = errors.New("injected failure")

const fakeMediaURL = "https://media.test/"

// Storage keeps uploaded objects in memory.
type Storage struct {
	mu         sync.Mutex
	Objects    map[string][]byte
	Deleted    []string
	FailUpload bool
}

func NewStorage() *Storage {
	return &Storage{Objects: map[string][]byte{}}
}

func (s *Storage) UploadFile(_ context.Context, fileName string, data []byte, folder string, _ ...string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailUpload {
		return "", ErrInjected
	}
	key := path.Join(folder, fileName)
	s.Objects[key] = data
	return key, nil
}

func (s *Storage) DeleteFile(_ context.Context, objectKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Objects, objectKey)
	s.Deleted = append(s.Deleted, objectKey)
	return nil
}

func (s *Storage) GetPublicLinkKey(objectKey string) string {
	return fakeMediaURL + objectKey
}

func (s *Storage) GetObjectKeyFromLink(link string) string {
	if !strings.HasPrefix(link, fakeMediaURL) {
		return ""
	}
	return strings.TrimPrefix(link, fakeMediaURL)
}

func (s *Storage) Has(objectKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.Objects[objectKey]
	return ok
}

type SentMail struct {
	To          string
	Subject     string
	Body        string
	Attachments []mailing.Attachment
}

// Mailer records messages instead of sending them.
type Mailer struct {
	Sent []SentMail
	Err  error
}

func (m *Mailer) SendMail(toEmail string, subject string, body string, attachments ...mailing.Attachment) error {
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, SentMail{To: toEmail, Subject: subject, Body: body, Attachments: attachments})
	return nil
}
