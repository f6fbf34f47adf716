package contact_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kushtati/kushtati-immo/internal/contact"
)

var receivedAt = time.Date(2024, 12, 10, 9, 15, 0, 0, time.UTC)

func validParams() contact.Params {
	return contact.Params{
		Name:    "Mamadou Diallo",
		Email:   "mamadou.diallo@example.com",
		Phone:   "+224 620 00 00 00",
		Subject: contact.SubjectVisit,
		Message: "Je souhaite visiter la villa de Camayenne samedi.",
	}
}

func TestService_Submit(t *testing.T) {
	type testCase struct {
		name    string
		mutate  func(p *contact.Params)
		wantErr bool
	}

	tests := []testCase{
		{name: "Success", mutate: func(*contact.Params) {}},
		{name: "NoPhone", mutate: func(p *contact.Params) { p.Phone = "" }},
		{name: "MissingName", mutate: func(p *contact.Params) { p.Name = "" }, wantErr: true},
		{name: "MissingEmail", mutate: func(p *contact.Params) { p.Email = "" }, wantErr: true},
		{name: "MalformedEmail", mutate: func(p *contact.Params) { p.Email = "mamadou@" }, wantErr: true},
		{name: "UnknownSubject", mutate: func(p *contact.Params) { p.Subject = "complaint" }, wantErr: true},
		{name: "MissingMessage", mutate: func(p *contact.Params) { p.Message = "" }, wantErr: true},
		{name: "MessageTooLong", mutate: func(p *contact.Params) { p.Message = strings.Repeat("a", 4001) }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := contact.NewService(contact.NewMemory(), func() time.Time { return receivedAt })

			params := validParams()
			tt.mutate(&params)

			lead, err := svc.Submit(context.Background(), params)

			leads, listErr := svc.List(context.Background())
			require.NoError(t, listErr)

			if tt.wantErr {
				require.ErrorIs(t, err, contact.ErrInvalid)
				assert.Empty(t, leads)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, receivedAt, lead.ReceivedAt)
			require.Len(t, leads, 1)
			assert.Equal(t, lead, leads[0])
		})
	}
}
