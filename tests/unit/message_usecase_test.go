package unit

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type messageFixture struct {
	messages *MessageRepoMock
	audit    *AuditRepoMock
	uc       *usecase.MessageUsecase
}

func newMessageFixture() *messageFixture {
	f := &messageFixture{
		messages: new(MessageRepoMock),
		audit:    new(AuditRepoMock),
	}
	f.uc = usecase.NewMessageUsecase(f.messages, f.audit)
	return f
}

func TestMessageSend_TitleAndBodyRequired(t *testing.T) {
	f := newMessageFixture()

	_, err := f.uc.Send(context.Background(), "admin@example.com", "  ", "hello")
	assertHTTPStatus(t, err, 400)

	_, err = f.uc.Send(context.Background(), "admin@example.com", "Maintenance", "")
	assertHTTPStatus(t, err, 400)

	f.messages.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestMessageSend_OverwritesAndAudits(t *testing.T) {
	f := newMessageFixture()

	f.messages.On("Upsert", mock.Anything, mock.MatchedBy(func(m model.AdminMessage) bool {
		return m.Title == "Maintenance"
	})).Return(model.AdminMessage{ID: 1, Title: "Maintenance"}, nil)
	f.audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == "message.send" && l.Detail == "Maintenance"
	})).Return(nil)

	out, err := f.uc.Send(context.Background(), "admin@example.com", "Maintenance", "Store closes friday")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)

	f.audit.AssertExpectations(t)
}

func TestMessageGet_NoneFound(t *testing.T) {
	f := newMessageFixture()

	f.messages.On("Get", mock.Anything).Return(model.AdminMessage{}, false, nil)

	_, err := f.uc.Get(context.Background())
	assertHTTPStatus(t, err, 404)
}

func TestMessageDelete_NoneFound(t *testing.T) {
	f := newMessageFixture()

	f.messages.On("Delete", mock.Anything).Return(repo.ErrNotFound)

	err := f.uc.Delete(context.Background(), "admin@example.com")
	assertHTTPStatus(t, err, 404)
}
