package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	app "dlsdk-demos/internal/application"
	"dlsdk-demos/internal/container"
	"dlsdk-demos/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я бот для демонстрации моделей DaoAI DeepLearning.

📸 Отправьте фото, и модель выбранной задачи его обработает.

📋 Команды:
/check — отправить фото на обработку
/task <название> — выбрать задачу модели
/tasks — список задач
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Выберите задачу: /task object_detection
2️⃣ Отправьте фото
3️⃣ Получите сводку, JSON результата и фото с разметкой

📋 Команды:
/check — начать проверку
/tasks — список задач
/cancel — отменить операцию`

	msgAwaitingPhoto   = "📸 Отправьте фото для задачи %s."
	msgCancelled       = "❌ Операция отменена. Отправьте /check для новой проверки."
	msgSendPhoto       = "📸 Пожалуйста, отправьте фото."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgUnknownTask     = "❓ Неизвестная задача %q.\n\n%s"
	msgTaskSelected    = "✅ Выбрана задача %s. Отправьте фото."
	msgProcessing      = "⏳ Обрабатываю изображение..."
	msgBusy            = "⏳ Предыдущее изображение ещё обрабатывается."
	msgNothingFound    = "✅ Модель ничего не нашла."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте другое фото."
)

// Bot представляет Telegram-бота
type Bot struct {
	api       *tgbotapi.BotAPI
	container *container.Container
	logger    *zap.Logger
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	logger := c.Logger.Named("telegram")
	logger.Info("authorized", zap.String("account", api.Self.UserName))

	return &Bot{
		api:       api,
		container: c,
		logger:    logger,
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены ctx
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

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	users := b.container.UserService
	user, err := users.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		b.logger.Error("get user", zap.Int64("user_id", msg.From.ID), zap.Error(err))
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg, user)
		return
	}

	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg, user)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	users := b.container.UserService
	var err error

	switch msg.Command() {
	case "start":
		_, err = users.Cancel(ctx, user.ID, user.ChatID)
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "tasks":
		b.sendMessage(msg.Chat.ID, taskList())

	case "task":
		task, perr := entity.ParseTask(msg.CommandArguments())
		if perr != nil {
			b.sendMessage(msg.Chat.ID, fmt.Sprintf(msgUnknownTask, strings.TrimSpace(msg.CommandArguments()), taskList()))
			return
		}
		_, err = users.SelectTask(ctx, user.ID, user.ChatID, task)
		b.sendMessage(msg.Chat.ID, fmt.Sprintf(msgTaskSelected, task))

	case "check":
		_, err = users.BeginCheck(ctx, user.ID, user.ChatID)
		b.sendMessage(msg.Chat.ID, fmt.Sprintf(msgAwaitingPhoto, user.Task))

	case "cancel":
		_, err = users.Cancel(ctx, user.ID, user.ChatID)
		b.sendMessage(msg.Chat.ID, msgCancelled)

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}

	if err != nil {
		b.logger.Error("save user state", zap.Int64("user_id", user.ID), zap.String("command", msg.Command()), zap.Error(err))
	}
}

// handlePhoto обрабатывает входящее фото моделью выбранной задачи
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	users := b.container.UserService
	if user.State == entity.StateProcessing {
		b.sendMessage(msg.Chat.ID, msgBusy)
		return
	}

	if _, err := users.SetState(ctx, user.ID, user.ChatID, entity.StateProcessing); err != nil {
		b.logger.Error("set processing state", zap.Int64("user_id", user.ID), zap.Error(err))
	}
	defer func() {
		if _, err := users.Cancel(ctx, user.ID, user.ChatID); err != nil {
			b.logger.Error("reset user state", zap.Int64("user_id", user.ID), zap.Error(err))
		}
	}()

	b.sendMessage(msg.Chat.ID, msgProcessing)

	// Берём фото с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	imageData, err := b.downloadFile(photo.FileID)
	if err != nil {
		b.logger.Error("download photo", zap.String("file_id", photo.FileID), zap.Error(err))
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	modelPath := b.container.Config.ModelPath(string(user.Task))
	out, err := b.container.InferenceService.RunBytes(ctx, user.Task, modelPath, imageData)
	if err != nil {
		b.logger.Error("inference", zap.String("task", string(user.Task)), zap.String("model", modelPath), zap.Error(err))
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}
	b.logger.Info("photo processed",
		zap.Int64("user_id", user.ID),
		zap.String("task", string(user.Task)),
		zap.Int("bytes", len(imageData)),
		zap.Duration("elapsed", out.Elapsed))

	b.sendMessage(msg.Chat.ID, formatReport(user.Task, out))

	doc := tgbotapi.NewDocument(msg.Chat.ID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("%s_result.json", user.Task),
		Bytes: out.JSON,
	})
	if _, err := b.api.Send(doc); err != nil {
		b.logger.Error("send result json", zap.Error(err))
	}

	if out.Visualized != nil {
		vis := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileBytes{
			Name:  fmt.Sprintf("%s_result.png", user.Task),
			Bytes: out.Visualized,
		})
		if _, err := b.api.Send(vis); err != nil {
			b.logger.Error("send visualization", zap.Error(err))
		}
	}
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func taskList() string {
	var sb strings.Builder
	sb.WriteString("📋 Доступные задачи:\n")
	for _, t := range entity.Tasks {
		sb.WriteString("• ")
		sb.WriteString(string(t))
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatReport текстовая сводка результата для чата
func formatReport(task entity.Task, out *app.InferenceOutput) string {
	summary := strings.TrimRight(out.Result.Summary(), "\n")
	if summary == "" {
		return msgNothingFound
	}
	return fmt.Sprintf("🔍 %s (%d мс)\n%s", task, out.Elapsed.Milliseconds(), summary)
}
