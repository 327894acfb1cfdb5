package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communitykitchen/eventdesk/internal/config"
	"github.com/communitykitchen/eventdesk/pkg/core/model"
)

type mockMailer struct {
	sent    []sentEmail
	sendErr error
}

type sentEmail struct {
	to      string
	subject string
	body    string
}

func (m *mockMailer) SendEmail(to, subject, body string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentEmail{to: to, subject: subject, body: body})
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		RosterSheetID: "sheet-1",
		RosterTab:     "Roster",
		GmailUserID:   "coordinator@example.org",
		GmailSender:   "The Kitchen Team",
	}
}

func TestSendToolkit_SendsAndAdvancesToInProcess(t *testing.T) {
	store := newMockStore(&model.EventRequest{
		ID:             1,
		Status:         model.StatusNew,
		OrganizerName:  "Dana",
		OrganizerEmail: "dana@example.org",
		RequestedDate:  "2025-06-14",
		Address:        "12 Hill St",
	})
	mailer := &mockMailer{}

	result, err := SendToolkit(context.Background(), store, mailer, testConfig(), testLogger, 1, "admin-1", mergeTime)
	require.NoError(t, err)

	assert.Equal(t, model.StatusInProcess, result.Status)
	assert.Equal(t, "dana@example.org", result.SentTo)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "dana@example.org", mailer.sent[0].to)
	assert.Contains(t, mailer.sent[0].body, "Dana")
	assert.Contains(t, mailer.sent[0].body, "2025-06-14")

	saved := store.events[1]
	assert.Equal(t, model.StatusInProcess, saved.Status)
	require.NotNil(t, saved.ToolkitSentAt)
	assert.Equal(t, mergeTime, *saved.ToolkitSentAt)
	assert.Equal(t, "admin-1", saved.ToolkitSentBy)
}

func TestSendToolkit_ResendRefreshesStampOnly(t *testing.T) {
	store := newMockStore(&model.EventRequest{
		ID:             1,
		Status:         model.StatusNew,
		OrganizerEmail: "dana@example.org",
	})
	mailer := &mockMailer{}

	_, err := SendToolkit(context.Background(), store, mailer, testConfig(), testLogger, 1, "admin-1", mergeTime)
	require.NoError(t, err)

	later := mergeTime.Add(48 * time.Hour)
	result, err := SendToolkit(context.Background(), store, mailer, testConfig(), testLogger, 1, "admin-2", later)
	require.NoError(t, err)

	assert.Equal(t, model.StatusInProcess, result.Status)
	saved := store.events[1]
	assert.Equal(t, later, *saved.ToolkitSentAt)
	assert.Equal(t, "admin-2", saved.ToolkitSentBy)
	assert.Len(t, mailer.sent, 2)
}

func TestSendToolkit_NoOrganizerEmailFailsBeforeSend(t *testing.T) {
	store := newMockStore(&model.EventRequest{ID: 1, Status: model.StatusNew})
	mailer := &mockMailer{}

	_, err := SendToolkit(context.Background(), store, mailer, testConfig(), testLogger, 1, "admin-1", mergeTime)
	assert.Error(t, err)
	assert.Empty(t, mailer.sent)
	assert.Zero(t, store.updateCalls)
}

func TestSendToolkit_MailerFailureLeavesRequestUntouched(t *testing.T) {
	store := newMockStore(&model.EventRequest{
		ID:             1,
		Status:         model.StatusNew,
		OrganizerEmail: "dana@example.org",
	})
	mailer := &mockMailer{sendErr: errors.New("smtp unavailable")}

	_, err := SendToolkit(context.Background(), store, mailer, testConfig(), testLogger, 1, "admin-1", mergeTime)
	assert.Error(t, err)
	assert.Zero(t, store.updateCalls)
	assert.Equal(t, model.StatusNew, store.events[1].Status)
	assert.Nil(t, store.events[1].ToolkitSentAt)
}
