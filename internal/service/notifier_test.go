package service_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	tc "github.com/Roma7-7-7/telegram"

	"github.com/Roma7-7-7/homework-notifier/internal/service"
	"github.com/Roma7-7-7/homework-notifier/internal/service/mocks"
)

func TestChatNotifier_Notify(t *testing.T) {
	const chatID = "123"

	tests := []struct {
		name     string
		telegram func(*gomock.Controller) service.TelegramClient
		wantLog  string
	}{
		{
			name: "success",
			telegram: func(ctrl *gomock.Controller) service.TelegramClient {
				res := mocks.NewMockTelegramClient(ctrl)
				res.EXPECT().SendMessage(gomock.Any(), chatID, approvedMsg).Return(nil)
				return res
			},
			wantLog: "level=DEBUG msg=\"message sent\"",
		},
		{
			name: "error_send",
			telegram: func(ctrl *gomock.Controller) service.TelegramClient {
				res := mocks.NewMockTelegramClient(ctrl)
				res.EXPECT().SendMessage(gomock.Any(), chatID, approvedMsg).Return(assert.AnError)
				return res
			},
			wantLog: "level=ERROR msg=\"failed to send message\"",
		},
		{
			name: "error_forbidden",
			telegram: func(ctrl *gomock.Controller) service.TelegramClient {
				res := mocks.NewMockTelegramClient(ctrl)
				res.EXPECT().SendMessage(gomock.Any(), chatID, approvedMsg).Return(fmt.Errorf("send message: %w", tc.ErrForbidden))
				return res
			},
			wantLog: "level=WARN msg=\"bot is blocked or removed from the chat\"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			var buf bytes.Buffer
			log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			n := service.NewChatNotifier(tt.telegram(ctrl), chatID, log)
			assert.NotPanics(t, func() {
				n.Notify(t.Context(), approvedMsg)
			})
			assert.Contains(t, buf.String(), tt.wantLog)
		})
	}
}
