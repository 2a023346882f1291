// Package bot is the Telegram transport: it consumes inbound updates via
// long polling, routes commands, and delivers finished reports to the
// administrator chat.
package bot

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"telegram-report-bot/internal/config"
	"telegram-report-bot/internal/ingest"
)

const (
	replySaved        = "Saved"
	replyBotActive    = "Bot active"
	replyNotAllowed   = "Not allowed"
	replyPreparing    = "Preparing report"
	linksSavedPattern = "%d link(s) saved"
)

// ExportRunner triggers one export pass on admin request.
type ExportRunner interface {
	Run(ctx context.Context) error
}

// Bot wraps the Telegram Bot API client.
type Bot struct {
	api         *tgbotapi.BotAPI
	ingest      *ingest.Service
	exporter    ExportRunner
	adminID     int64
	pollTimeout int
	wg          sync.WaitGroup
}

// New authorizes against the Bot API. The export runner is attached
// separately because report delivery flows back through this bot.
func New(cfg *config.TelegramConfig, ing *ingest.Service) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize bot: %w", err)
	}
	logrus.Infof("Authorized on Telegram account %s", api.Self.UserName)

	return &Bot{
		api:         api,
		ingest:      ing,
		adminID:     cfg.AdminID,
		pollTimeout: cfg.PollTimeoutSeconds,
	}, nil
}

// AttachExporter wires the export pipeline used by /sendnow.
func (b *Bot) AttachExporter(r ExportRunner) {
	b.exporter = r
}

// Start begins consuming updates in a background goroutine.
func (b *Bot) Start() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout
	updates := b.api.GetUpdatesChan(u)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for update := range updates {
			b.handleUpdate(update)
		}
	}()

	logrus.Info("Telegram update loop started")
}

// Stop shuts down the long-polling loop and waits for the in-flight
// update to finish.
func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
	b.wg.Wait()
	logrus.Info("Telegram update loop stopped")
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	var reply string
	switch {
	case msg.IsCommand():
		reply = b.handleCommand(msg)
	case msg.Text != "":
		added := b.ingest.Ingest(msg.From.ID, msg.Text)
		reply = ingestReply(added)
	default:
		return
	}

	if reply != "" {
		b.reply(msg.Chat.ID, reply)
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) string {
	switch msg.Command() {
	case "start":
		return replyBotActive
	case "sendnow":
		if msg.From.ID != b.adminID {
			logrus.Warnf("Rejected /sendnow from user %d", msg.From.ID)
			return replyNotAllowed
		}
		// Acknowledge before processing; the pipeline runs detached and
		// its failures are logged, not reported back to the chat.
		if b.exporter != nil {
			go func() {
				if err := b.exporter.Run(context.Background()); err != nil {
					logrus.Errorf("Manual export failed: %v", err)
				}
			}()
		}
		return replyPreparing
	default:
		return ""
	}
}

func ingestReply(added int) string {
	if added == 0 {
		return replySaved
	}
	return fmt.Sprintf(linksSavedPattern, added)
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		logrus.Warnf("Failed to send reply to chat %d: %v", chatID, err)
	}
}

// SendReport delivers the report file to the administrator chat. It
// implements exporter.Deliverer.
func (b *Bot) SendReport(ctx context.Context, filename string, data []byte) error {
	doc := tgbotapi.NewDocument(b.adminID, tgbotapi.FileBytes{Name: filename, Bytes: data})
	if _, err := b.api.Send(doc); err != nil {
		return fmt.Errorf("failed to send report %s to admin %d: %w", filename, b.adminID, err)
	}
	logrus.Infof("Report %s delivered to admin %d", filename, b.adminID)
	return nil
}
