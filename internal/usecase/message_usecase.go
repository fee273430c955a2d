package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 全ユーザー向けのお知らせ。最新1件だけを持つ。
type MessageUsecase struct {
	messages repo.MessageRepository
	audit    repo.AuditLogRepository
}

func NewMessageUsecase(messages repo.MessageRepository, audit repo.AuditLogRepository) *MessageUsecase {
	return &MessageUsecase{messages: messages, audit: audit}
}

func (u *MessageUsecase) Send(ctx context.Context, actorEmail, title, message string) (model.AdminMessage, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(message) == "" {
		return model.AdminMessage{}, NewHTTPError(http.StatusBadRequest, "title and message are required")
	}

	saved, err := u.messages.Upsert(ctx, model.AdminMessage{
		Title:   title,
		Message: message,
	})
	if err != nil {
		return model.AdminMessage{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	_ = u.audit.Create(ctx, model.AuditLog{
		ActorEmail: actorEmail,
		Action:     "message.send",
		Detail:     title,
	})
	return saved, nil
}

func (u *MessageUsecase) Get(ctx context.Context) (model.AdminMessage, error) {
	m, ok, err := u.messages.Get(ctx)
	if err != nil {
		return model.AdminMessage{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !ok {
		return model.AdminMessage{}, NewHTTPError(http.StatusNotFound, "no message found")
	}
	return m, nil
}

func (u *MessageUsecase) Delete(ctx context.Context, actorEmail string) error {
	err := u.messages.Delete(ctx)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "no message found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	_ = u.audit.Create(ctx, model.AuditLog{
		ActorEmail: actorEmail,
		Action:     "message.delete",
	})
	return nil
}
