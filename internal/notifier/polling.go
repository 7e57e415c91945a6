package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Command is one incoming user message.
type Command struct {
	ChatID    int64
	UserID    int64
	Username  string
	FirstName string
	Text      string
}

// CommandHandler is called when a user command is received; a non-empty
// reply is sent back to the same chat.
type CommandHandler func(ctx context.Context, cmd Command) string

// telegramUpdate represents a Telegram update from long polling.
type telegramUpdate struct {
	UpdateID int `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		From *struct {
			ID        int64  `json:"id"`
			Username  string `json:"username"`
			FirstName string `json:"first_name"`
		} `json:"from"`
	} `json:"message"`
}

func (u telegramUpdate) command() (Command, bool) {
	if u.Message == nil || strings.TrimSpace(u.Message.Text) == "" {
		return Command{}, false
	}
	cmd := Command{
		ChatID: u.Message.Chat.ID,
		Text:   strings.TrimSpace(u.Message.Text),
	}
	if u.Message.From != nil {
		cmd.UserID = u.Message.From.ID
		cmd.Username = u.Message.From.Username
		cmd.FirstName = u.Message.From.FirstName
	} else {
		cmd.UserID = cmd.ChatID
	}
	return cmd, true
}

// StartPolling begins long-polling for Telegram commands. Blocks until ctx is cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	offset := 0
	client := &http.Client{Timeout: 35 * time.Second, Transport: t.Client.Transport}

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("telegram polling stopped")
			return
		default:
		}

		updates, err := t.getUpdates(ctx, client, offset)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			zap.L().Warn("polling request failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
			}
			continue
		}

		for _, update := range updates {
			offset = update.UpdateID + 1
			cmd, ok := update.command()
			if !ok {
				continue
			}
			zap.L().Info("received command",
				zap.Int64("chat_id", cmd.ChatID), zap.Int64("user_id", cmd.UserID), zap.String("text", cmd.Text))
			reply := handler(ctx, cmd)
			if reply != "" {
				if err := t.SendWithRetry(ctx, cmd.ChatID, reply, 2); err != nil {
					zap.L().Error("send reply", zap.Int64("chat_id", cmd.ChatID), zap.Error(err))
				}
			}
		}
	}
}

func (t *TelegramNotifier) getUpdates(ctx context.Context, client *http.Client, offset int) ([]telegramUpdate, error) {
	apiURL := fmt.Sprintf("%s?offset=%d&timeout=30", t.methodURL("getUpdates"), offset)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create polling request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read polling response: %w", err)
	}

	var result struct {
		OK     bool             `json:"ok"`
		Result []telegramUpdate `json:"result"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode polling response: %w", err)
	}
	if !result.OK {
		return nil, fmt.Errorf("telegram getUpdates not ok: %s", string(body))
	}
	return result.Result, nil
}
