package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	app "snapvision/internal/application"
	"snapvision/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я пульт управления камерой-классификатором.

📸 Команда /capture делает снимок и распознаёт, что на нём изображено.
Сами снимки никуда не отправляются — вы получаете только список меток.

📋 Команды:
/grant — разрешить доступ к камере
/capture — сделать снимок и классифицировать
/reset — сбросить результат
/status — текущее состояние
/help — справка`

	msgHelp = `ℹ️ Как пользоваться:

1️⃣ Отправьте /grant, чтобы разрешить доступ к камере
2️⃣ Дождитесь готовности модели
3️⃣ Отправьте /capture — получите до пяти меток с вероятностями
4️⃣ /reset очищает результат и позволяет снимать снова

📋 Команды:
/grant /capture /reset /status`

	msgPermissionDenied = "🚫 Доступ к камере не разрешён. Попробуйте /grant ещё раз."
	msgPermissionOK     = "✅ Доступ к камере разрешён."
	msgModelNotReady    = "⏳ Модель ещё загружается, снимок пока невозможен."
	msgBusy             = "⚠️ Классификация уже идёт, дождитесь результата."
	msgCameraError      = "⚠️ Камера не вернула кадр. Попробуйте ещё раз."
	msgResetRejected    = "⚠️ Сбросить можно только показанный результат."
	msgResetDone        = "🔄 Результат сброшен. Можно снимать."
	msgUnknownCommand   = "❓ Неизвестная команда. Используйте /help для справки."
)

// Bot — Telegram-пульт: принимает действия пользователя и отображает
// состояние сессии. Кадры с камеры наружу не передаются, только текст.
type Bot struct {
	api      *tgbotapi.BotAPI
	sessions *app.SessionService
	logger   *zap.Logger

	mu    sync.Mutex
	chats map[int64]struct{}
}

// NewBot создаёт бота и подписывает его на срезы сессии.
func NewBot(token string, sessions *app.SessionService, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	b := &Bot{
		api:      api,
		sessions: sessions,
		logger:   logger.Named("telegram"),
		chats:    make(map[int64]struct{}),
	}
	sessions.Subscribe(b.broadcast)

	b.logger.Info("authorized", zap.String("account", api.Self.UserName))
	return b, nil
}

// Run запускает основной цикл обработки сообщений.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение.
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	b.mu.Lock()
	b.chats[msg.Chat.ID] = struct{}{}
	b.mu.Unlock()

	if !msg.IsCommand() {
		b.send(msg.Chat.ID, msgUnknownCommand)
		return
	}

	switch msg.Command() {
	case "start":
		b.send(msg.Chat.ID, msgStart)
	case "help":
		b.send(msg.Chat.ID, msgHelp)
	case "status":
		b.send(msg.Chat.ID, renderSnapshot(b.sessions.Snapshot()))
	case "grant":
		if err := b.sessions.RequestPermission(ctx); err != nil {
			b.send(msg.Chat.ID, msgPermissionDenied)
			return
		}
		b.send(msg.Chat.ID, msgPermissionOK)
	case "capture":
		// Снимок и инференс идут в отдельной горутине, чтобы не блокировать
		// цикл обновлений; одновременность ограничивает сам конечный автомат.
		go func() {
			if err := b.sessions.Capture(ctx); err != nil {
				b.send(msg.Chat.ID, captureErrorMessage(err))
			}
		}()
	case "reset":
		if err := b.sessions.Reset(); err != nil {
			b.send(msg.Chat.ID, msgResetRejected)
			return
		}
		b.send(msg.Chat.ID, msgResetDone)
	default:
		b.send(msg.Chat.ID, msgUnknownCommand)
	}
}

func captureErrorMessage(err error) string {
	switch {
	case errors.Is(err, entity.ErrModelNotReady):
		return msgModelNotReady
	case errors.Is(err, entity.ErrPermissionDenied):
		return msgPermissionDenied
	case errors.Is(err, entity.ErrInvalidTransition):
		return msgBusy
	default:
		return msgCameraError
	}
}

// broadcast рассылает срез сессии всем известным чатам.
func (b *Bot) broadcast(snap entity.Snapshot) {
	text := renderSnapshot(snap)

	b.mu.Lock()
	chats := make([]int64, 0, len(b.chats))
	for id := range b.chats {
		chats = append(chats, id)
	}
	b.mu.Unlock()

	for _, id := range chats {
		b.send(id, text)
	}
}

// renderSnapshot превращает срез сессии в текст для чата.
func renderSnapshot(snap entity.Snapshot) string {
	var sb strings.Builder
	switch snap.State {
	case entity.StateLoading:
		sb.WriteString("⏳ Загрузка модели...")
		if !snap.Permission {
			sb.WriteString("\n🔒 Доступ к камере не разрешён — отправьте /grant.")
		}
	case entity.StateReady:
		sb.WriteString("✅ Готов к съёмке. Отправьте /capture.")
	case entity.StateCapturing:
		sb.WriteString("📸 Делаю снимок...")
	case entity.StateClassifying:
		sb.WriteString("🔍 Классифицирую изображение...")
	case entity.StateResultsShown:
		sb.WriteString("🏷 Результат:")
		for _, line := range snap.Lines {
			sb.WriteString("\n• ")
			sb.WriteString(line)
		}
		sb.WriteString("\n\n/reset — снять ещё раз")
	default:
		sb.WriteString(fmt.Sprintf("Состояние: %s", snap.State))
	}
	return sb.String()
}

func (b *Bot) send(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Warn("send failed", zap.Int64("chat", chatID), zap.Error(err))
	}
}
