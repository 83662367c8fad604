package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Rollin-123/belafrica-node-sub000/internal/envelope"
	"github.com/Rollin-123/belafrica-node-sub000/internal/message/domain"
	"github.com/Rollin-123/belafrica-node-sub000/internal/message/repository"
	"github.com/Rollin-123/belafrica-node-sub000/internal/platform/apperr"
)

const conv = "SenegalEnFrance:general"

type failingRepo struct{ repository.Repository }

func (failingRepo) Create(ctx context.Context, m *domain.Message) error { return errors.New("db down") }
func (failingRepo) ListByConversation(ctx context.Context, id string, limit int) ([]*domain.Message, error) {
	return nil, errors.New("db down")
}

func newService() (*MessageService, *repository.MemoryRepository) {
	repo := repository.NewMemoryRepository()
	return NewMessageService(envelope.NewCipher(), repo, nil), repo
}

func TestMessageService_EncryptDecrypt(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	for _, pt := range []string{"", "Bonjour", "Салам 👋"} {
		enc, err := svc.Encrypt(ctx, pt, conv)
		if err != nil {
			t.Fatalf("Encrypt(%q): %v", pt, err)
		}
		got, err := svc.Decrypt(ctx, enc, conv)
		if err != nil {
			t.Fatalf("Decrypt: %v", err)
		}
		if got != pt {
			t.Errorf("Decrypt = %q, want %q", got, pt)
		}
	}
}

func TestMessageService_DecryptErrors(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	enc, _ := svc.Encrypt(ctx, "secret", conv)

	_, err := svc.Decrypt(ctx, enc, "another-conversation")
	if !apperr.Is(err, apperr.KindCrypto) || !errors.Is(err, envelope.ErrAuthentication) {
		t.Errorf("wrong secret: err = %v", err)
	}
	_, err = svc.Decrypt(ctx, "%%%", conv)
	if !apperr.Is(err, apperr.KindCrypto) || !errors.Is(err, envelope.ErrMalformed) {
		t.Errorf("malformed: err = %v", err)
	}
	if _, err := svc.Decrypt(ctx, enc, ""); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("empty secret: err = %v, want KindValidation", err)
	}
	if _, err := svc.Encrypt(ctx, "x", ""); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("encrypt empty secret: err = %v, want KindValidation", err)
	}
}

func TestMessageService_SendAndList(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time { tick++; return base.Add(time.Duration(tick) * time.Second) }

	for _, content := range []string{"first", "second"} {
		if _, err := svc.Send(ctx, "user-1", conv, content); err != nil {
			t.Fatalf("Send(%q): %v", content, err)
		}
	}
	stored, _ := repo.ListByConversation(ctx, conv, 10)
	for _, m := range stored {
		if m.Envelope == "first" || m.Envelope == "second" {
			t.Fatal("plaintext stored in place of an envelope")
		}
	}

	// A corrupted row and a row sealed for another conversation.
	repo.Put(&domain.Message{ID: "bad-1", ConversationID: conv, SenderID: "user-2", Envelope: "not-base64!", CreatedAt: base.Add(time.Minute)})
	foreign, _ := envelope.NewCipher().Encrypt("hi", "other")
	repo.Put(&domain.Message{ID: "bad-2", ConversationID: conv, SenderID: "user-2", Envelope: foreign, CreatedAt: base.Add(2 * time.Minute)})

	list, err := svc.List(ctx, conv, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 4 {
		t.Fatalf("len = %d, want 4", len(list))
	}
	if list[0].ID != "bad-2" || !list[0].Undecryptable || list[0].Content != "" {
		t.Errorf("newest = %+v, want undecryptable bad-2", list[0])
	}
	if !list[1].Undecryptable {
		t.Errorf("corrupt row = %+v, want undecryptable", list[1])
	}
	if list[2].Content != "second" || list[3].Content != "first" || list[2].Undecryptable {
		t.Errorf("decrypted rows = %+v, %+v", list[2], list[3])
	}

	limited, _ := svc.List(ctx, conv, 1)
	if len(limited) != 1 {
		t.Errorf("limit 1 returned %d", len(limited))
	}
}

func TestMessageService_StoreFailure(t *testing.T) {
	svc := NewMessageService(envelope.NewCipher(), failingRepo{}, nil)
	if _, err := svc.Send(context.Background(), "user-1", conv, "x"); !apperr.Is(err, apperr.KindDependency) {
		t.Errorf("Send: err = %v, want KindDependency", err)
	}
	if _, err := svc.List(context.Background(), conv, 10); !apperr.Is(err, apperr.KindDependency) {
		t.Errorf("List: err = %v, want KindDependency", err)
	}
}
